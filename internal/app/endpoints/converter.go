package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
)

type ConverterService interface {
	ConvertSeatMap(ctx context.Context, req dto.ConvertRequest) (dto.ConvertResponse, error)
	ListSeats(ctx context.Context, req dto.SeatListRequest) (dto.SeatListResponse, error)
}

type ConverterEndpoint struct {
	ConvertSeatMap endpoint.Endpoint
	ListSeats      endpoint.Endpoint
}

func MakeConverterEndpoint(service ConverterService) ConverterEndpoint {
	return ConverterEndpoint{
		ConvertSeatMap: makeConvertSeatMapEndpoint(service),
		ListSeats:      makeListSeatsEndpoint(service),
	}
}

func makeConvertSeatMapEndpoint(service ConverterService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.ConvertRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.ConvertSeatMap(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("converter service: %w", err)
		}

		return resp, nil
	}
}

func makeListSeatsEndpoint(service ConverterService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SeatListRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.ListSeats(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("converter service: %w", err)
		}

		return resp, nil
	}
}
