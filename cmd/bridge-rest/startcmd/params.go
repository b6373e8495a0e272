/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	hostURLFlagName      = "host-url"
	hostURLFlagShorthand = "u"
	hostURLFlagUsage     = "Host:Port to run the bridge instance on." +
		" Alternatively, this can be set with the following environment variable: " + hostURLEnvKey
	hostURLEnvKey = "BRIDGE_HOST_URL"

	configFileFlagName      = "config-file"
	configFileFlagShorthand = "c"
	configFileFlagUsage     = "Path to the bridge YAML configuration file." +
		" Alternatively, this can be set with the following environment variable: " + configFileEnvKey
	configFileEnvKey = "BRIDGE_CONFIG_FILE"

	logLevelFlagName  = "log-level"
	logLevelFlagUsage = "Logging level: CRITICAL, ERROR, WARNING, INFO, DEBUG. Defaults to INFO." +
		" Alternatively, this can be set with the following environment variable: " + logLevelEnvKey
	logLevelEnvKey = "BRIDGE_LOG_LEVEL"
)

type startupParameters struct {
	hostURL    string
	configFile string
	logLevel   string
}

func getStartupParameters(cmd *cobra.Command) (*startupParameters, error) {
	hostURL, err := getUserSetVar(cmd, hostURLFlagName, hostURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	configFile, err := getUserSetVar(cmd, configFileFlagName, configFileEnvKey, false)
	if err != nil {
		return nil, err
	}

	logLevel, err := getUserSetVar(cmd, logLevelFlagName, logLevelEnvKey, true)
	if err != nil {
		return nil, err
	}

	return &startupParameters{
		hostURL:    hostURL,
		configFile: configFile,
		logLevel:   logLevel,
	}, nil
}

func createFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(hostURLFlagName, hostURLFlagShorthand, "", hostURLFlagUsage)
	cmd.Flags().StringP(configFileFlagName, configFileFlagShorthand, "", configFileFlagUsage)
	cmd.Flags().StringP(logLevelFlagName, "", "", logLevelFlagUsage)
}

func getUserSetVar(cmd *cobra.Command, flagName, envKey string, isOptional bool) (string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return "", fmt.Errorf("%s flag not found: %w", flagName, err)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	if isOptional || isSet {
		return value, nil
	}

	return "", fmt.Errorf("neither %s (command line flag) nor %s (environment variable) have been set",
		flagName, envKey)
}
