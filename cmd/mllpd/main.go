package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "mllpd",
	Short:         "MLLP listener and sender for HL7 messaging",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Accept MLLP connections and log (and optionally acknowledge) messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		return runListen(cmd.Context(), cfg)
	},
}

var (
	sendAddr    string
	sendCharset string
	sendFile    string
	sendWaitAck bool
	sendTimeout time.Duration
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Frame a message and send it to an MLLP listener",
	Long: `Send reads a message from a file (or stdin when no file is given),
wraps it in MLLP framing and writes it to the given address. With --wait-ack
it waits for the framed acknowledgement and prints its payload.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend(sendAddr, sendCharset, sendFile, sendWaitAck, sendTimeout)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "mllpd.yaml", "path to the configuration file")

	sendCmd.Flags().StringVar(&sendAddr, "addr", "127.0.0.1:2575", "listener address to send to")
	sendCmd.Flags().StringVar(&sendCharset, "charset", "UTF-8", "payload charset (IANA name)")
	sendCmd.Flags().StringVar(&sendFile, "file", "", "file holding the message; stdin when empty")
	sendCmd.Flags().BoolVar(&sendWaitAck, "wait-ack", false, "wait for the acknowledgement frame")
	sendCmd.Flags().DurationVar(&sendTimeout, "timeout", 10*time.Second, "acknowledgement wait timeout")

	rootCmd.AddCommand(listenCmd, sendCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
