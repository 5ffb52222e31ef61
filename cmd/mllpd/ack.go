package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// buildAck builds a minimal HL7 acknowledgement for the given message.
// Sender and receiver from the inbound MSH segment are swapped and the
// inbound control id is echoed in the MSA segment.
func buildAck(message string) (string, error) {
	segment, _, _ := strings.Cut(message, "\r")
	if !strings.HasPrefix(segment, "MSH|") {
		return "", errors.New("message has no MSH segment")
	}

	fields := strings.Split(segment, "|")
	field := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	// MSH-3..6: sending app/facility, receiving app/facility
	sendingApp, sendingFac := field(2), field(3)
	receivingApp, receivingFac := field(4), field(5)
	controlID := field(9)

	now := time.Now().Format("20060102150405")
	msh := fmt.Sprintf("MSH|^~\\&|%s|%s|%s|%s|%s||ACK|%s|P|2.4",
		receivingApp, receivingFac, sendingApp, sendingFac, now, now)
	msa := fmt.Sprintf("MSA|AA|%s", controlID)

	return msh + "\r" + msa, nil
}
