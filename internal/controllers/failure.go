package controllers

import (
	apperrors "github.com/amaumene/cinefront/internal/errors"
	"github.com/sirupsen/logrus"
)

// userMessage turns an action failure into the text shown to the user
func userMessage(err error) string {
	ce, ok := apperrors.As(err)
	if !ok {
		return "Something went wrong. Please try again."
	}

	switch ce.Type {
	case apperrors.ErrorTypeValidation:
		return ce.Message
	case apperrors.ErrorTypeNetwork:
		return "The movie catalog is unreachable. Please try again later."
	case apperrors.ErrorTypeFetch:
		return "Error fetching movie data: " + ce.Message
	case apperrors.ErrorTypeWrite:
		return "Error saving: " + ce.Message
	}
	return ce.Message
}

// logFailure logs err with the diagnostic fields operators need
func logFailure(logger *logrus.Entry, err error, msg string) {
	fields := logrus.Fields{}
	if ce, ok := apperrors.As(err); ok {
		fields["error_type"] = ce.Type
		if ce.Endpoint != "" {
			fields["endpoint"] = ce.Endpoint
		}
		if ce.Status != 0 {
			fields["status"] = ce.Status
		}
	}
	logger.WithFields(fields).WithError(err).Error(msg)
}
