package main

import (
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Zereker/mllp"
)

func runSend(addr, charsetName, file string, waitAck bool, timeout time.Duration) error {
	var (
		data []byte
		err  error
	)
	if file == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return errors.Wrap(err, "read message")
	}

	codec, err := mllp.NewCodec(mllp.CharsetNameOption(charsetName))
	if err != nil {
		return err
	}

	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return err
	}
	conn, err := net.DialTCP("tcp", nil, tcpAddr)
	if err != nil {
		return errors.Wrapf(err, "dial %s", addr)
	}
	defer conn.Close()

	id := conn.LocalAddr().String()
	defer codec.Release(id)

	frame, err := codec.Encode(id, mllp.Raw(data))
	if err != nil {
		return err
	}
	if _, err = conn.Write(frame); err != nil {
		return errors.Wrap(err, "write frame")
	}

	if !waitAck {
		return nil
	}

	buf := mllp.NewBuffer(4096)
	chunk := make([]byte, 4096)
	deadline := time.Now().Add(timeout)
	for {
		_ = conn.SetReadDeadline(deadline)
		n, err := conn.Read(chunk)
		if err != nil {
			return errors.Wrap(err, "wait for acknowledgement")
		}
		_, _ = buf.Write(chunk[:n])

		text, ok, err := codec.Decode(id, buf)
		if err != nil {
			return err
		}
		if ok {
			fmt.Println(strings.ReplaceAll(text, "\r", "\n"))
			return nil
		}
	}
}
