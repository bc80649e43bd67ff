// Command lucim-auditd serves the Auditor gRPC service: remote audits plus a
// content-addressable report archive.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"github.com/benoitries/lucim-audit/grpcaudit"
	"github.com/benoitries/lucim-audit/storage/casregistry"

	_ "github.com/benoitries/lucim-audit/storage/ipfs"
	_ "github.com/benoitries/lucim-audit/storage/localfs"
)

func main() {
	fs := flag.NewFlagSet("lucim-auditd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7877", "listen address")
	backend := fs.String("backend", "localfs", "archive backend name")
	listBackends := fs.Bool("list-backends", false, "List supported backends and exit")

	casregistry.RegisterFlags(fs, casregistry.UsageDaemon)

	_ = fs.Parse(os.Args[1:])
	if *listBackends {
		for _, b := range casregistry.List(casregistry.UsageDaemon) {
			if b.Description == "" {
				_, _ = fmt.Fprintf(os.Stdout, "%s\n", b.Name)
				continue
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s\t%s\n", b.Name, b.Description)
		}
		return
	}

	cas, closeFn, err := casregistry.Open(*backend, casregistry.UsageDaemon)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if closeFn != nil {
		defer closeFn()
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpcaudit.RegisterAuditorServer(s, &grpcaudit.Server{CAS: cas})

	fmt.Fprintf(os.Stderr, "lucim-auditd listening on %s (backend=%s)\n", lis.Addr().String(), *backend)
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
