package http

import (
	"errors"
	"net/http"

	"parcels/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps the error taxonomy onto HTTP status codes. It is the only
// place that does so.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrPartialFailure):
		return http.StatusMultiStatus
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an Error body, or as a PartialFailure body for
// sagas that stopped after a committed step.
func respondError(ctx echo.Context, err error) error {
	var pf *errs.PartialFailureError
	if errors.As(err, &pf) {
		return ctx.JSON(http.StatusMultiStatus, PartialFailure{
			Code:           http.StatusMultiStatus,
			Message:        pf.Error(),
			Saga:           pf.Saga,
			FailedStep:     pf.FailedStep,
			CompletedSteps: pf.CompletedSteps,
			Inconsistency:  pf.Inconsistency,
			Entities:       pf.EntityIDs,
		})
	}

	status := statusFor(err)
	message := err.Error()

	var ppe *errs.PaymentProcessorError
	if errors.As(err, &ppe) {
		message = ppe.Message
	}
	if status == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		message = http.StatusText(status)
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}

func respondBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// HTTPErrorHandler renders errors raised by echo itself (unknown routes,
// rejected bodies) in the same shape as handler errors.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		err = ctx.JSON(he.Code, Error{Code: he.Code, Message: message})
	} else {
		err = respondError(ctx, err)
	}
	if err != nil {
		ctx.Logger().Error(err)
	}
}
