/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthchecks

import (
	"github.com/alexliesenfeld/health"

	"github.com/idcontact/irma-bridge/pkg/healthchecks/irmaserver"
)

type Config struct {
	IrmaServerURL string
}

func Get(config *Config) []health.Check {
	return []health.Check{
		{
			Name:               "irma-server",
			Check:              irmaserver.New(config.IrmaServerURL),
			MaxTimeInError:     1,
			MaxContiguousFails: 1,
		},
	}
}
