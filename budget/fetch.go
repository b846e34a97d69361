package budget

import (
	"context"
	stderrors "errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/tripcost/errors"
	"github.com/kbukum/tripcost/httpclient"
	"github.com/kbukum/tripcost/httpclient/rest"
	"github.com/kbukum/tripcost/logger"
	"github.com/kbukum/tripcost/mapper"
	"github.com/kbukum/tripcost/observability"
)

// builder constructs one record from a document. c is nil for detached records.
type builder[T any] func(doc mapper.Document, c *Client) *T

// fetch runs one traced request and returns the unwrapped payload.
// A nil payload with a nil error means absent.
func (c *Client) fetch(ctx context.Context, op, path string, attrs []attribute.KeyValue, opts ...rest.RequestOption) (any, error) {
	attrs = append(attrs, attribute.String(observability.AttrResourceID, path))
	ctx, obs := observability.StartOperation(ctx, c.tracer, c.metrics, op, attrs...)

	data, err := c.rest.Fetch(ctx, path, opts...)
	if err != nil {
		appErr := toAppError(op, path, err)
		obs.End(ctx, observability.OutcomeError, appErr, string(appErr.Code))
		fields := logger.ErrorFields(op, err)
		fields[logger.FieldPath] = path
		c.log.WithContext(ctx).Error("request failed", fields)
		return nil, appErr
	}

	outcome := observability.OutcomeFound
	if !truthy(data) {
		outcome = observability.OutcomeAbsent
	}
	obs.End(ctx, outcome, nil, "")
	return data, nil
}

// lookupOne fetches path and builds a single record. Falsy or non-object
// payloads are absent.
func lookupOne[T any](ctx context.Context, c *Client, op, path string, build builder[T]) (*T, error) {
	data, err := c.fetch(ctx, op, path, nil)
	if err != nil || !truthy(data) {
		return nil, err
	}
	doc, ok := data.(map[string]any)
	if !ok {
		c.log.Warn("single resource payload is not an object", logger.Fields(logger.FieldPath, path))
		return nil, nil
	}
	return build(doc, c), nil
}

// lookupMany fetches path and builds one record per element, in order.
// Empty, falsy or non-list payloads are absent (nil slice).
func lookupMany[T any](ctx context.Context, c *Client, op, path string, build builder[T]) ([]*T, error) {
	data, err := c.fetch(ctx, op, path, nil)
	if err != nil || !truthy(data) {
		return nil, err
	}
	items, ok := data.([]any)
	if !ok {
		c.log.Warn("multi resource payload is not a list", logger.Fields(logger.FieldPath, path))
		return nil, nil
	}
	out := make([]*T, 0, len(items))
	for _, item := range items {
		doc, _ := item.(map[string]any)
		out = append(out, build(doc, c))
	}
	return out, nil
}

// toAppError maps transport failures onto application error codes.
func toAppError(op, path string, err error) *errors.AppError {
	var he *httpclient.Error
	if !stderrors.As(err, &he) {
		return errors.Internal(err).WithDetail("path", path)
	}

	var appErr *errors.AppError
	switch he.Code {
	case httpclient.ErrCodeAuth:
		appErr = errors.Unauthorized("The API key was rejected by " + ServiceName + ".")
		appErr.HTTPStatus = he.StatusCode
	case httpclient.ErrCodeRateLimit:
		appErr = errors.RateLimited(ServiceName)
	case httpclient.ErrCodeValidation:
		appErr = errors.Validation("The request was rejected by " + ServiceName + ".")
		appErr.HTTPStatus = he.StatusCode
	case httpclient.ErrCodeTimeout:
		appErr = errors.Timeout(op, err)
	case httpclient.ErrCodeConnection:
		appErr = errors.ConnectionFailed(ServiceName, err)
	default:
		appErr = errors.ExternalServiceError(ServiceName, he.StatusCode, err)
	}
	return appErr.WithCause(err).WithDetail("path", path)
}
