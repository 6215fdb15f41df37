package app

import "github.com/jcmexdev/ecommerce-gateway/internal/pkg/rpc"

func notFound(id string) error {
	return rpc.NotFound(rpc.ResourceProduct, id)
}

func alreadyExists(id string) error {
	return rpc.AlreadyExists(rpc.ResourceProduct, id)
}
