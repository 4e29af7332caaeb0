package server

import "errors"

var (
	ErrMissingAddress       = errors.New("server: address is required")
	ErrEmptyCertPath        = errors.New("server: certificate and key paths are required")
	ErrFailedLoadCert       = errors.New("server: load certificate")
	ErrServerAlreadyRunning = errors.New("server: already running")
)
