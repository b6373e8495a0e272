/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/idcontact/irma-bridge/pkg/attribute"
	"github.com/idcontact/irma-bridge/pkg/sealer"
)

// irmaServerConfiguration locates the external IRMA server. AuthToken, when
// set, is sent as a static Authorization header on session start.
type irmaServerConfiguration struct {
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// keyConfiguration is PEM key material tagged by algorithm family.
type keyConfiguration struct {
	Type sealer.KeyType `mapstructure:"type"`
	Key  string         `mapstructure:"key"`
}

// bridgeConfiguration is the static, read-only configuration shared by all
// request handlers.
type bridgeConfiguration struct {
	ServerURL         string                  `mapstructure:"server_url"`
	InternalURL       string                  `mapstructure:"internal_url"`
	IrmaUIURL         string                  `mapstructure:"irma_ui_url"`
	IrmaServer        irmaServerConfiguration `mapstructure:"irma_server"`
	Attributes        attribute.Mapping       `mapstructure:"attributes"`
	SigningPrivkey    keyConfiguration        `mapstructure:"signing_privkey"`
	EncryptionPubkey  keyConfiguration        `mapstructure:"encryption_pubkey"`
}

func loadConfiguration(configFile string) (*bridgeConfiguration, error) {
	vp := viper.New()
	vp.SetConfigFile(configFile)

	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}

	var config bridgeConfiguration

	if err := vp.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	return &config, validateConfiguration(&config)
}

func validateConfiguration(config *bridgeConfiguration) error {
	if config.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}

	if config.InternalURL == "" {
		config.InternalURL = config.ServerURL
	}

	if config.IrmaUIURL == "" {
		return fmt.Errorf("irma_ui_url is required")
	}

	if config.IrmaServer.URL == "" {
		return fmt.Errorf("irma_server.url is required")
	}

	if len(config.Attributes) == 0 {
		return fmt.Errorf("attributes mapping is required")
	}

	for name, ids := range config.Attributes {
		if len(ids) == 0 {
			return fmt.Errorf("attribute %q has an empty identifier set", name)
		}
	}

	if config.SigningPrivkey.Key == "" || config.EncryptionPubkey.Key == "" {
		return fmt.Errorf("signing_privkey and encryption_pubkey are required")
	}

	return nil
}
