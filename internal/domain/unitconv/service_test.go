package unitconv

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/exchanger/pkg/errors"
)

func newTestService() Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestServiceConvertSuccess(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Convert(context.Background(), Request{Type: "temperature", From: "C", To: "F", Value: "100"})
	require.NoError(t, err)
	require.Equal(t, Response{Type: Temperature, From: Celsius, To: Fahrenheit, Value: 100, Result: 212}, resp)
}

func TestServiceConvertErrorCodes(t *testing.T) {
	svc := newTestService()
	cases := []struct {
		name string
		req  Request
		code string
	}{
		{name: "unknown type", req: Request{Type: "volume", From: "C", To: "F", Value: "1"}, code: "unknown_unit_type"},
		{name: "unknown unit", req: Request{Type: "length", From: "xx", To: "m", Value: "1"}, code: "unknown_unit"},
		{name: "bad value", req: Request{Type: "length", From: "km", To: "m", Value: "abc"}, code: "invalid_value"},
		{name: "missing value", req: Request{Type: "weight", From: "kg", To: "g"}, code: "invalid_value"},
		{name: "units checked before value", req: Request{Type: "weight", From: "kg", To: "m", Value: "abc"}, code: "unknown_unit"},
	}

	for _, tc := range cases {
		_, err := svc.Convert(context.Background(), tc.req)
		require.Error(t, err, tc.name)
		require.True(t, apperrors.IsCode(err, tc.code), "%s: %v", tc.name, err)
	}
}

func TestServiceConvertErrorNamesOffendingCode(t *testing.T) {
	_, err := newTestService().Convert(context.Background(), Request{Type: "length", From: "xx", To: "m", Value: "1"})
	require.ErrorContains(t, err, `length unit "xx" is not recognized`)
}

func TestServiceUnits(t *testing.T) {
	require.Equal(t, Catalog(), newTestService().Units(context.Background()))
}
