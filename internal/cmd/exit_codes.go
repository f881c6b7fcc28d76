package cmd

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/spf13/pflag"

	szurubooru "github.com/rzk3/szurubooru-client"
)

const (
	exitOK        = 0
	exitGeneric   = 1
	exitUsage     = 2
	exitAuth      = 3
	exitNotFound  = 4
	exitIntegrity = 5
	exitServer    = 7
	exitNetwork   = 8
)

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}

	var validationErr *szurubooru.ValidationError
	if errors.As(err, &validationErr) {
		return exitUsage
	}
	var serverErr *szurubooru.ServerError
	if errors.As(err, &serverErr) {
		return exitCodeFromServerError(serverErr)
	}
	var responseErr *szurubooru.ResponseError
	if errors.As(err, &responseErr) {
		switch {
		case responseErr.StatusCode == 401 || responseErr.StatusCode == 403:
			return exitAuth
		case responseErr.StatusCode == 404:
			return exitNotFound
		case responseErr.StatusCode >= 500:
			return exitServer
		default:
			return exitGeneric
		}
	}

	if isUsageError(err) {
		return exitUsage
	}
	if isNetworkError(err) {
		return exitNetwork
	}
	return exitGeneric
}

func exitCodeFromServerError(serverErr *szurubooru.ServerError) int {
	name := string(serverErr.Name)
	switch {
	case serverErr.Name == szurubooru.ErrorNameAuth ||
		serverErr.Name == szurubooru.ErrorNameInvalidPassword:
		return exitAuth
	case strings.HasSuffix(name, "NotFoundError"):
		return exitNotFound
	case strings.HasSuffix(name, "AlreadyExistsError") ||
		strings.HasSuffix(name, "IsInUseError") ||
		serverErr.Name == szurubooru.ErrorNameIntegrity:
		return exitIntegrity
	case strings.HasPrefix(name, "Invalid") || strings.HasSuffix(name, "MissingRequiredFileError") ||
		strings.HasSuffix(name, "MissingRequiredParameterError"):
		return exitUsage
	default:
		return exitGeneric
	}
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "tls") ||
		strings.Contains(msg, "certificate") ||
		strings.Contains(msg, "i/o timeout") ||
		strings.Contains(msg, "timeout")
}

func isUsageError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	indicators := []string{
		"unknown command",
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"flag provided but not defined",
		"requires at least",
		"requires exactly",
		"invalid argument",
		"invalid value",
		"must be",
		"is required",
		"missing",
	}
	for _, indicator := range indicators {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
