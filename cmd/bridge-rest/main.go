/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/idcontact/irma-bridge/cmd/bridge-rest/startcmd"
)

var logger = log.New("bridge-rest")

func main() {
	rootCmd := &cobra.Command{
		Use: "bridge-rest",
	}

	rootCmd.AddCommand(startcmd.GetStartCmd())

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to run bridge-rest", log.WithError(err))
		os.Exit(1)
	}
}
