package rpc

import (
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Resource types carried in ResourceInfo details.
const (
	ResourceProduct = "product"
	ResourceOrder   = "order"
)

// NotFound returns a codes.NotFound status naming the missing resource so
// callers can recover the identifier without parsing the message.
func NotFound(resourceType, id string) error {
	return withResource(codes.NotFound, fmt.Sprintf("%s %s not found", resourceType, id), resourceType, id)
}

// AlreadyExists is the duplicate-create counterpart of NotFound.
func AlreadyExists(resourceType, id string) error {
	return withResource(codes.AlreadyExists, fmt.Sprintf("%s %s already exists", resourceType, id), resourceType, id)
}

func withResource(code codes.Code, msg, resourceType, id string) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ResourceInfo{
		ResourceType: resourceType,
		ResourceName: id,
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// ResourceFromError extracts the ResourceInfo attached by NotFound or
// AlreadyExists. ok is false when err is not a status or carries no detail.
func ResourceFromError(err error) (resourceType, id string, ok bool) {
	st, isStatus := status.FromError(err)
	if !isStatus {
		return "", "", false
	}
	for _, d := range st.Details() {
		if info, match := d.(*errdetails.ResourceInfo); match {
			return info.GetResourceType(), info.GetResourceName(), true
		}
	}
	return "", "", false
}
