package unitconv

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/exchanger/pkg/errors"
)

// Service exposes unit conversion to transports.
type Service interface {
	Convert(ctx context.Context, req Request) (Response, error)
	Units(ctx context.Context) []UnitGroup
}

type service struct {
	logger *slog.Logger
}

// NewService wires up the unit conversion domain.
func NewService(logger *slog.Logger) Service {
	return &service{logger: logger.With("component", "unitconv.service")}
}

func (s *service) Convert(ctx context.Context, req Request) (Response, error) {
	d, err := LookupDomain(req.Type)
	if err != nil {
		return Response{}, wrap(err)
	}
	from := Unit(strings.TrimSpace(req.From))
	to := Unit(strings.TrimSpace(req.To))
	if err := d.Validate(from, to); err != nil {
		return Response{}, wrap(err)
	}
	value, err := ParseValue(d.Type, string(req.Value))
	if err != nil {
		return Response{}, wrap(err)
	}
	result, err := d.Convert(value, from, to)
	if err != nil {
		return Response{}, wrap(err)
	}
	s.logger.DebugContext(ctx, "unit converted", "type", d.Type, "from", from, "to", to, "value", value, "result", result)
	return Response{
		Type:   d.Type,
		From:   from,
		To:     to,
		Value:  value,
		Result: result,
	}, nil
}

func (s *service) Units(context.Context) []UnitGroup {
	return Catalog()
}

func wrap(err error) error {
	kind, ok := KindOf(err)
	if !ok {
		return apperrors.Wrap("internal_error", "conversion failed", err)
	}
	return apperrors.Wrap(string(kind), "conversion rejected", err)
}
