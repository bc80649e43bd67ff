package grpcaudit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ipfs/go-cid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/benoitries/lucim-audit/cidutil"
	"github.com/benoitries/lucim-audit/report"
	"github.com/benoitries/lucim-audit/storage"
)

// Client talks to an Auditor daemon. Its archive methods implement
// storage.CAS, so a remote daemon can back any code that takes a CAS.
type Client struct {
	cc     *grpc.ClientConn
	client AuditorClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewAuditorClient(cc)}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) decodeResult(reply *wrapperspb.BytesValue, err error) (report.Result, error) {
	var res report.Result
	if err != nil {
		return res, mapRPC(err)
	}
	if err := json.Unmarshal(reply.GetValue(), &res); err != nil {
		return res, err
	}
	return res, nil
}

// AuditDiagram audits a diagram submission on the remote daemon.
func (c *Client) AuditDiagram(ctx context.Context, text string) (report.Result, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	return c.decodeResult(c.client.AuditDiagram(ctx, wrapperspb.String(text)))
}

// AuditOperationModel audits an operation-model JSON document remotely.
func (c *Client) AuditOperationModel(ctx context.Context, data []byte) (report.Result, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	return c.decodeResult(c.client.AuditOperationModel(ctx, wrapperspb.Bytes(data)))
}

// AuditScenario audits a scenario artifact remotely.
func (c *Client) AuditScenario(ctx context.Context, text string) (report.Result, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	return c.decodeResult(c.client.AuditScenario(ctx, wrapperspb.String(text)))
}

func (c *Client) Put(data []byte) (cid.Cid, error) {
	if c == nil || c.client == nil {
		return cid.Undef, storage.ErrNotFound
	}
	expected, err := cidutil.CIDv1RawSHA256CID(data)
	if err != nil {
		return cid.Undef, err
	}

	ctx, cancel := c.ctx(context.Background())
	defer cancel()

	reply, err := c.client.Archive(ctx, wrapperspb.Bytes(data))
	if err != nil {
		return cid.Undef, mapRPC(err)
	}
	id, err := cid.Decode(reply.GetValue())
	if err != nil || !id.Defined() {
		return cid.Undef, storage.ErrInvalidCID
	}
	if id.String() != expected.String() {
		return cid.Undef, storage.ErrCIDMismatch
	}
	return id, nil
}

func (c *Client) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, storage.ErrInvalidCID
	}
	ctx, cancel := c.ctx(context.Background())
	defer cancel()

	reply, err := c.client.Fetch(ctx, wrapperspb.String(id.String()))
	if err != nil {
		return nil, mapRPC(err)
	}
	b := reply.GetValue()
	got, err := cidutil.CIDv1RawSHA256CID(b)
	if err != nil {
		return nil, err
	}
	if got.String() != id.String() {
		return nil, storage.ErrCIDMismatch
	}
	return b, nil
}

func (c *Client) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	ctx, cancel := c.ctx(context.Background())
	defer cancel()

	reply, err := c.client.Has(ctx, wrapperspb.String(id.String()))
	if err != nil {
		return false
	}
	return reply.GetValue()
}

func (c *Client) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if c.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, c.Timeout)
}
