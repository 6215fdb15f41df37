package service

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/rpc"
)

// translateError turns NotFound, AlreadyExists and InvalidArgument statuses
// into domain errors. The ResourceInfo detail wins over the caller's resource
// and id. A rejected payload is reported under the resource name.
func translateError(op, resource, id string, err error) error {
	code := status.Code(err)
	switch code {
	case codes.InvalidArgument:
		return &entity.ValidationError{Fields: map[string]string{resource: status.Convert(err).Message()}}
	case codes.NotFound, codes.AlreadyExists:
	default:
		return fmt.Errorf("grpc %s: %w", op, err)
	}

	if kind, name, ok := rpc.ResourceFromError(err); ok {
		resource, id = kind, name
	}
	if code == codes.NotFound {
		return &entity.NotFoundError{Resource: resource, ID: id}
	}
	return &entity.ConflictError{Resource: resource, ID: id}
}
