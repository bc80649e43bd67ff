package ipfs

import (
	"flag"

	"github.com/benoitries/lucim-audit/storage"
	"github.com/benoitries/lucim-audit/storage/casregistry"
)

var flagBin string

func init() {
	casregistry.MustRegister(casregistry.Backend{
		Name:        "ipfs",
		Description: "IPFS archive via the local Kubo CLI",
		Usage:       casregistry.UsageCLI | casregistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagBin, "ipfs-bin", "", "path to the ipfs binary (for --backend=ipfs); defaults to \"ipfs\"")
		},
		Open: func() (storage.CAS, func() error, error) {
			return New(Options{Bin: flagBin}), nil, nil
		},
	})
}
