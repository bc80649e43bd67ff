package grpcaudit

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/benoitries/lucim-audit/storage/localfs"
)

func dialTestServer(t *testing.T) *Client {
	t.Helper()
	cas, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatalf("localfs.New: %v", err)
	}

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	RegisterAuditorServer(srv, &Server{CAS: cas})

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	return &Client{cc: cc, client: NewAuditorClient(cc), Timeout: 2 * time.Second}
}

func TestAuditDiagramOverGRPC(t *testing.T) {
	client := dialTestServer(t)

	text := "@startuml\n" +
		"participant System as system\n" +
		"participant \"jen:ActResident\" as jen\n" +
		"jen -> system : oeRequest(\"id\")\n" +
		"activate jen\n" +
		"deactivate jen\n" +
		"@enduml"
	res, err := client.AuditDiagram(context.Background(), text)
	if err != nil {
		t.Fatalf("AuditDiagram: %v", err)
	}
	if res.Verdict != "compliant" {
		t.Fatalf("verdict = %q, violations = %+v", res.Verdict, res.Violations)
	}
}

func TestAuditOperationModelOverGRPC(t *testing.T) {
	client := dialTestServer(t)

	res, err := client.AuditOperationModel(context.Background(), []byte(`{"actors": {"Resident": {}}}`))
	if err != nil {
		t.Fatalf("AuditOperationModel: %v", err)
	}
	if res.Verdict != "non-compliant" {
		t.Fatalf("verdict = %q", res.Verdict)
	}
}

func TestAuditScenarioOverGRPC(t *testing.T) {
	client := dialTestServer(t)

	res, err := client.AuditScenario(context.Background(), "system -> system : oePing()\n")
	if err != nil {
		t.Fatalf("AuditScenario: %v", err)
	}
	if res.Verdict != "non-compliant" {
		t.Fatalf("verdict = %q", res.Verdict)
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	client := dialTestServer(t)

	payload := []byte(`{"verdict":"compliant","violations":[]}`)
	id, err := client.Put(payload)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !id.Defined() {
		t.Fatal("expected defined CID")
	}
	if !client.Has(id) {
		t.Fatal("Has: expected true")
	}
	got, err := client.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatal("payload mismatch")
	}
}
