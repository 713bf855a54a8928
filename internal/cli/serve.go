// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"github.com/alvinbaena/pwd-analyzer/internal/api"
	"github.com/alvinbaena/pwd-analyzer/internal/config"
	"github.com/alvinbaena/pwd-analyzer/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/likexian/selfca"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var errNoTLS = errors.New("server requires TLS configuration to start. " +
	"Please use either the --self-tls flag or set a certificate with the --tls-cert and --tls-key flags")

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the password analysis API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCommand()
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	flags := serveCmd.Flags()
	flags.Bool("self-tls", false,
		"If the server should use a self-signed certificate when starting. The certificate is renewed on each server restart")
	flags.String("tls-cert", "", "Path to the PEM encoded TLS certificate to be used by the server")
	flags.String("tls-key", "", "Path to the PEM encoded TLS private key to be used by the server")
	flags.Uint16P("port", "p", 3100, "Port to be used by the server")
	flags.Int64("cache-size", 10000, "Maximum number of analysis results kept in memory. 0 disables the cache")
	flags.BoolVar(&debug, "debug", false, "Run the HTTP router in debug mode")

	viper.BindPFlag("PWD_SELF_TLS", flags.Lookup("self-tls"))
	viper.BindPFlag("PWD_TLS_CERT", flags.Lookup("tls-cert"))
	viper.BindPFlag("PWD_TLS_KEY", flags.Lookup("tls-key"))
	viper.BindPFlag("PWD_PORT", flags.Lookup("port"))
	viper.BindPFlag("PWD_CACHE_SIZE", flags.Lookup("cache-size"))

	rootCmd.AddCommand(serveCmd)
}

func serveCommand() error {
	util.ApplyCliSettings(verbose, profile, pprofPort)
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	router, err := api.NewRouter(newEvaluator(cfg), cfg.CacheSize)
	if err != nil {
		return fmt.Errorf("error initializing API: %w", err)
	}

	srvAddr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              srvAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var certFile, keyFile string
	switch {
	case cfg.TLSCert != "" && cfg.TLSKey != "":
		certFile, keyFile = cfg.TLSCert, cfg.TLSKey
	case cfg.SelfTLS:
		log.Warn().Msgf("using auto self-signed certificate for TLS. This is not recommended for production. Please consider using your own certificates.")
		if srv.TLSConfig, err = selfSignedTLS(); err != nil {
			return err
		}
	default:
		return errNoTLS
	}

	go func() {
		log.Info().Msgf("starting TLS Server on address: %s", srvAddr)
		// with a self-signed certificate the files are empty and the TLS config is used
		if err := srv.ListenAndServeTLS(certFile, keyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("error starting server")
		}
	}()

	gracefulShutdown(srv)
	return nil
}

// selfSignedTLS generates a 30 day self-signed certificate.
func selfSignedTLS() (*tls.Config, error) {
	caConfig := selfca.Certificate{
		IsCA:      true,
		KeySize:   2048,
		NotBefore: time.Now(),
		NotAfter:  time.Now().Add(time.Duration(30*24) * time.Hour),
	}

	certificate, key, err := selfca.GenerateCertificate(caConfig)
	if err != nil {
		return nil, fmt.Errorf("error generating auto self-signed certificate: %w", err)
	}

	pair, err := tls.X509KeyPair(
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certificate}),
		pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}),
	)
	if err != nil {
		return nil, fmt.Errorf("error using auto self-signed certificate: %w", err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{pair},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

func gracefulShutdown(srv *http.Server) {
	quit := make(chan os.Signal, 1)
	// kill -9 is syscall.SIGKILL but can't be caught
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("server Shutdown.")
	}
	log.Info().Msg("server exiting...")
}
