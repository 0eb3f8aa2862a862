package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "storefront.cart.v1.CartService"

const (
	methodGetCart             = "/" + serviceName + "/GetCart"
	methodAddProduct          = "/" + serviceName + "/AddProduct"
	methodRemoveProduct       = "/" + serviceName + "/RemoveProduct"
	methodUpdateProductAmount = "/" + serviceName + "/UpdateProductAmount"
	methodWatchCart           = "/" + serviceName + "/WatchCart"
)

// CartServiceServer is the server API for the cart service.
type CartServiceServer interface {
	GetCart(context.Context, *Empty) (*Cart, error)
	AddProduct(context.Context, *ProductRequest) (*Cart, error)
	RemoveProduct(context.Context, *ProductRequest) (*Cart, error)
	UpdateProductAmount(context.Context, *UpdateAmountRequest) (*Cart, error)
	WatchCart(*Empty, grpc.ServerStream) error
}

func RegisterCartServiceServer(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&CartServiceDesc, srv)
}

var CartServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetCart", Handler: getCartHandler},
		{MethodName: "AddProduct", Handler: addProductHandler},
		{MethodName: "RemoveProduct", Handler: removeProductHandler},
		{MethodName: "UpdateProductAmount", Handler: updateProductAmountHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "WatchCart", Handler: watchCartHandler, ServerStreams: true},
	},
}

func getCartHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CartServiceServer).GetCart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetCart}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CartServiceServer).GetCart(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func addProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ProductRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CartServiceServer).AddProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodAddProduct}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CartServiceServer).AddProduct(ctx, req.(*ProductRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func removeProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ProductRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CartServiceServer).RemoveProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodRemoveProduct}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CartServiceServer).RemoveProduct(ctx, req.(*ProductRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func updateProductAmountHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UpdateAmountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CartServiceServer).UpdateProductAmount(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodUpdateProductAmount}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CartServiceServer).UpdateProductAmount(ctx, req.(*UpdateAmountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func watchCartHandler(srv any, stream grpc.ServerStream) error {
	in := new(Empty)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(CartServiceServer).WatchCart(in, stream)
}
