package app

import (
	"context"
	"errors"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jcmexdev/ecommerce-gateway/internal/ledger-service/domain"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/rpc"
)

// mapError converts repository and domain errors to gRPC statuses.
func mapError(err error, orderID int64) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		return rpc.NotFound(rpc.ResourceOrder, strconv.FormatInt(orderID, 10))
	case errors.Is(err, domain.ErrEmptyProductID),
		errors.Is(err, domain.ErrBadQuantity),
		errors.Is(err, domain.ErrNegativePrice):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
