package service

import (
	"context"

	"google.golang.org/grpc"

	"github.com/rshade/ghgcalc/internal/carbon"
)

// Client calls a remote emissions service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// CalculateScope1 calls the remote CalculateScope1 method.
func (c *Client) CalculateScope1(ctx context.Context, in *carbon.Scope1Input, opts ...grpc.CallOption) (*carbon.Scope1Output, error) {
	out := new(carbon.Scope1Output)
	if err := c.invoke(ctx, MethodCalculateScope1, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// CalculateScope2 calls the remote CalculateScope2 method.
func (c *Client) CalculateScope2(ctx context.Context, in *carbon.Scope2Input, opts ...grpc.CallOption) (*carbon.Scope2Output, error) {
	out := new(carbon.Scope2Output)
	if err := c.invoke(ctx, MethodCalculateScope2, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// CalculateScope3 calls the remote CalculateScope3 method.
func (c *Client) CalculateScope3(ctx context.Context, in *carbon.Scope3Input, opts ...grpc.CallOption) (*carbon.Scope3Output, error) {
	out := new(carbon.Scope3Output)
	if err := c.invoke(ctx, MethodCalculateScope3, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// CalculateReport calls the remote CalculateReport method.
func (c *Client) CalculateReport(ctx context.Context, in *carbon.ReportInput, opts ...grpc.CallOption) (*carbon.ReportOutput, error) {
	out := new(carbon.ReportOutput)
	if err := c.invoke(ctx, MethodCalculateReport, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}
