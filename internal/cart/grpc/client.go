package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dwikikusuma/shoping-cart/internal/cart/app"
	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
)

// Client talks to a remote cart service and offers the same calls as
// app.Local. Errors are gRPC status errors.
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) GetCart(ctx context.Context) (app.Outcome, error) {
	return c.call(ctx, methodGetCart, &Empty{})
}

func (c *Client) AddProduct(ctx context.Context, productID int64) (app.Outcome, error) {
	return c.call(ctx, methodAddProduct, &ProductRequest{ProductID: productID})
}

func (c *Client) RemoveProduct(ctx context.Context, productID int64) (app.Outcome, error) {
	return c.call(ctx, methodRemoveProduct, &ProductRequest{ProductID: productID})
}

func (c *Client) UpdateProductAmount(ctx context.Context, req app.UpdateProductAmount) (app.Outcome, error) {
	return c.call(ctx, methodUpdateProductAmount, &UpdateAmountRequest{
		ProductID: req.ProductID,
		Amount:    req.Amount,
	})
}

func (c *Client) call(ctx context.Context, method string, in any) (app.Outcome, error) {
	out := new(Cart)
	if err := c.conn.Invoke(ctx, method, in, out, grpc.CallContentSubtype(codecName)); err != nil {
		return app.Outcome{}, err
	}
	return fromProto(out)
}

// Watch opens the WatchCart stream. The channel closes when ctx is done or
// the stream ends.
func (c *Client) Watch(ctx context.Context) (<-chan domain.Cart, error) {
	stream, err := c.conn.NewStream(ctx, &CartServiceDesc.Streams[0], methodWatchCart, grpc.CallContentSubtype(codecName))
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(&Empty{}); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}

	out := make(chan domain.Cart, 1)
	go func() {
		defer close(out)
		for {
			msg := new(Cart)
			if err := stream.RecvMsg(msg); err != nil {
				return
			}
			o, err := fromProto(msg)
			if err != nil {
				return
			}
			select {
			case out <- o.Cart:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
