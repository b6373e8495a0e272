/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"fmt"
	"net/http"

	"github.com/alexliesenfeld/health"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.uber.org/zap"

	"github.com/idcontact/irma-bridge/pkg/attribute"
	"github.com/idcontact/irma-bridge/pkg/healthchecks"
	"github.com/idcontact/irma-bridge/pkg/irma"
	"github.com/idcontact/irma-bridge/pkg/restapi/resterr"
	"github.com/idcontact/irma-bridge/pkg/restapi/v1/bridge"
	"github.com/idcontact/irma-bridge/pkg/restapi/v1/healthcheck"
	"github.com/idcontact/irma-bridge/pkg/sealer"
	"github.com/idcontact/irma-bridge/pkg/service/authbridge"
)

var logger = log.New("bridge-rest")

// GetStartCmd returns the Cobra start command.
func GetStartCmd() *cobra.Command {
	startCmd := createStartCmd()

	createFlags(startCmd)

	return startCmd
}

func createStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start bridge-rest",
		Long:  "Start the IRMA authentication bridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := getStartupParameters(cmd)
			if err != nil {
				return err
			}

			return startBridge(params)
		},
	}
}

func startBridge(params *startupParameters) error {
	setLogLevel(params.logLevel)

	config, err := loadConfiguration(params.configFile)
	if err != nil {
		return err
	}

	e, err := buildEchoHandler(config)
	if err != nil {
		return err
	}

	logger.Info("Starting bridge-rest", zap.String("hostURL", params.hostURL))

	return e.Start(params.hostURL)
}

// buildEchoHandler constructs the full request handling chain. All
// configuration is read-only after this point and shared by reference across
// concurrent handlers.
func buildEchoHandler(config *bridgeConfiguration) (*echo.Echo, error) {
	signer, err := sealer.NewSigner(config.SigningPrivkey.Type, []byte(config.SigningPrivkey.Key))
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}

	encrypter, err := sealer.NewEncrypter(config.EncryptionPubkey.Type, []byte(config.EncryptionPubkey.Key))
	if err != nil {
		return nil, fmt.Errorf("create encrypter: %w", err)
	}

	irmaClient := irma.NewClient(&irma.Config{
		HTTPClient: http.DefaultClient,
		ServerURL:  config.IrmaServer.URL,
		AuthToken:  config.IrmaServer.AuthToken,
	})

	bridgeSvc := authbridge.NewService(&authbridge.Config{
		SessionClient: irmaClient,
		Mapper:        attribute.NewMapper(config.Attributes),
		Validator:     attribute.NewValidator(config.Attributes),
		Sealer:        sealer.New(signer, encrypter),
		HTTPClient:    http.DefaultClient,
		ServerURL:     config.ServerURL,
		InternalURL:   config.InternalURL,
		IrmaUIURL:     config.IrmaUIURL,
	})

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = resterr.HTTPErrorHandler

	e.Use(middleware.Recover())

	bridge.NewController(&bridge.Config{BridgeSvc: bridgeSvc}).Register(e)

	healthcheckController := &healthcheck.Controller{}
	e.GET("/healthcheck", healthcheckController.GetHealthcheck)

	e.GET("/system/healthcheck", echo.WrapHandler(health.NewHandler(newHealthChecker(config))))

	return e, nil
}

func newHealthChecker(config *bridgeConfiguration) health.Checker {
	var opts []health.CheckerOption

	for _, check := range healthchecks.Get(&healthchecks.Config{IrmaServerURL: config.IrmaServer.URL}) {
		opts = append(opts, health.WithCheck(check))
	}

	return health.NewChecker(opts...)
}

func setLogLevel(level string) {
	if level == "" {
		return
	}

	parsed, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("Unknown log level, defaulting to INFO", log.WithError(err))

		return
	}

	log.SetDefaultLevel(parsed)
}
