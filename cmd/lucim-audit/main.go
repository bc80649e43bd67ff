// Command lucim-audit audits LUCIM artifacts (sequence diagrams, operation
// models, scenarios), archives reports, and issues signed audit certificates.
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ipfs/go-cid"

	"github.com/benoitries/lucim-audit/catalog"
	"github.com/benoitries/lucim-audit/cert"
	"github.com/benoitries/lucim-audit/cidutil"
	"github.com/benoitries/lucim-audit/diagram"
	"github.com/benoitries/lucim-audit/keys"
	"github.com/benoitries/lucim-audit/opmodel"
	"github.com/benoitries/lucim-audit/report"
	"github.com/benoitries/lucim-audit/scenario"
	"github.com/benoitries/lucim-audit/storage"
	"github.com/benoitries/lucim-audit/storage/casregistry"

	_ "github.com/benoitries/lucim-audit/grpcaudit"
	_ "github.com/benoitries/lucim-audit/storage/ipfs"
	_ "github.com/benoitries/lucim-audit/storage/localfs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "diagram":
		return cmdDiagram(args[1:], out, errOut)
	case "opmodel":
		return cmdOpModel(args[1:], out, errOut)
	case "scenario":
		return cmdScenario(args[1:], out, errOut)
	case "cid":
		return cmdCID(args[1:], out, errOut)
	case "archive":
		return cmdArchive(args[1:], out, errOut)
	case "certify":
		return cmdCertify(args[1:], out, errOut)
	case "verify":
		return cmdVerify(args[1:], out, errOut)
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "lucim-audit: LUCIM artifact compliance auditor")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  lucim-audit diagram <file> [--opmodel <model.json>] [--scenario-types <T1,T2>]")
	fmt.Fprintln(w, "  lucim-audit opmodel <file>")
	fmt.Fprintln(w, "  lucim-audit scenario <file>")
	fmt.Fprintln(w, "  lucim-audit cid <file>")
	fmt.Fprintln(w, "  lucim-audit archive put|get|has --backend <name> [backend flags] <file|CID>")
	fmt.Fprintln(w, "  lucim-audit archive backends")
	fmt.Fprintln(w, "  lucim-audit certify --kind diagram|operation-model|scenario (--seed-hex <64hex> | --signer <name> [--signer-role <role>] | --key-file <path>) <file>")
	fmt.Fprintln(w, "  lucim-audit verify <cert-file>")
	fmt.Fprintln(w, "  lucim-audit key init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  lucim-audit key derive --from <name> --role <role> [--force]")
	fmt.Fprintln(w, "  lucim-audit key list")
	fmt.Fprintln(w, "  lucim-audit key export --name <name> [--role <role>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - audit commands print the report as canonical JSON to stdout")
	fmt.Fprintln(w, "  - exit code 0 means compliant, 1 means non-compliant or error, 2 usage")
	fmt.Fprintln(w, "  - --seed-hex must be a 32-byte (64 hex chars) ed25519 seed")
	fmt.Fprintln(w, "  - key files live under ~/.lucim-audit/keys/<name> (0600 seed files)")
	fmt.Fprintln(w, "  - certify writes canonical certificate bytes to stdout (no trailing newline)")
}

func readArtifact(fs *flag.FlagSet, errOut io.Writer, usage string) ([]byte, bool) {
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, usage)
		return nil, false
	}
	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read artifact: %v\n", err)
		return nil, false
	}
	return b, true
}

func emitResult(res report.Result, out io.Writer, errOut io.Writer) int {
	data, err := res.CanonicalJSON()
	if err != nil {
		fmt.Fprintf(errOut, "encode report: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, string(data))
	if res.Verdict != report.Compliant {
		return 1
	}
	return 0
}

func cmdDiagram(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("diagram", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var opmodelPath string
	var scenarioTypes string

	fs.StringVar(&opmodelPath, "opmodel", "", "Operation model JSON for cross-artifact checks")
	fs.StringVar(&scenarioTypes, "scenario-types", "", "Comma-separated actor types expected by the scenario")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	b, ok := readArtifact(fs, errOut, "usage: lucim-audit diagram <file> [--opmodel <model.json>] [--scenario-types <T1,T2>]")
	if !ok {
		return 2
	}

	opts := diagram.Options{Raw: string(b)}
	if opmodelPath != "" {
		mb, err := os.ReadFile(opmodelPath)
		if err != nil {
			fmt.Fprintf(errOut, "read opmodel: %v\n", err)
			return 1
		}
		om, err := catalog.OperationModelFromJSON(mb)
		if err != nil {
			fmt.Fprintf(errOut, "parse opmodel: %v\n", err)
			return 1
		}
		opts.OperationModel = om
	}
	if scenarioTypes != "" {
		var types []string
		for _, t := range strings.Split(scenarioTypes, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
		opts.Scenario = &catalog.Scenario{Types: types}
	}

	res, err := diagram.AuditWithOptions(string(b), opts)
	if err != nil {
		fmt.Fprintf(errOut, "audit: %v\n", err)
		return 1
	}
	return emitResult(res, out, errOut)
}

func cmdOpModel(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("opmodel", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	b, ok := readArtifact(fs, errOut, "usage: lucim-audit opmodel <file>")
	if !ok {
		return 2
	}
	return emitResult(opmodel.AuditWithOptions(b, opmodel.Options{Raw: string(b)}), out, errOut)
}

func cmdScenario(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	b, ok := readArtifact(fs, errOut, "usage: lucim-audit scenario <file>")
	if !ok {
		return 2
	}
	return emitResult(scenario.Audit(string(b)), out, errOut)
}

func cmdCID(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("cid", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	b, ok := readArtifact(fs, errOut, "usage: lucim-audit cid <file>")
	if !ok {
		return 2
	}
	_, _ = fmt.Fprintln(out, cidutil.CIDv1RawSHA256(b))
	return 0
}

func cmdArchive(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: lucim-audit archive put|get|has|backends ...")
		return 2
	}
	if args[0] == "backends" {
		for _, b := range casregistry.List(casregistry.UsageCLI) {
			if b.Description == "" {
				fmt.Fprintf(out, "%s\n", b.Name)
				continue
			}
			fmt.Fprintf(out, "%s\t%s\n", b.Name, b.Description)
		}
		return 0
	}

	op := args[0]
	fs := flag.NewFlagSet("archive "+op, flag.ContinueOnError)
	fs.SetOutput(errOut)
	backend := fs.String("backend", "localfs", "archive backend name")
	casregistry.RegisterFlags(fs, casregistry.UsageCLI)
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(errOut, "usage: lucim-audit archive %s --backend <name> [backend flags] <arg>\n", op)
		return 2
	}

	cas, closeFn, err := casregistry.Open(*backend, casregistry.UsageCLI)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer func() { _ = closeFn() }()
	}

	switch op {
	case "put":
		b, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "read: %v\n", err)
			return 1
		}
		id, err := storage.StoreArtifact(cas, b)
		if err != nil {
			fmt.Fprintf(errOut, "put: %v\n", err)
			return 1
		}
		_, _ = fmt.Fprintln(out, id.String())
		return 0
	case "get":
		id, err := cid.Decode(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "invalid CID: %v\n", err)
			return 2
		}
		b, err := cas.Get(id)
		if err != nil {
			fmt.Fprintf(errOut, "get: %v\n", err)
			return 1
		}
		_, _ = out.Write(b)
		return 0
	case "has":
		id, err := cid.Decode(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "invalid CID: %v\n", err)
			return 2
		}
		if cas.Has(id) {
			_, _ = fmt.Fprintln(out, "true")
			return 0
		}
		_, _ = fmt.Fprintln(out, "false")
		return 1
	default:
		fmt.Fprintf(errOut, "unknown archive subcommand: %s\n", op)
		return 2
	}
}

func cmdCertify(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("certify", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var kind string
	var seedHex string
	var signerName string
	var signerRole string
	var keyFile string

	fs.StringVar(&kind, "kind", "diagram", "Artifact kind: diagram, operation-model, or scenario")
	fs.StringVar(&seedHex, "seed-hex", "", "ed25519 seed as 64 hex chars")
	fs.StringVar(&signerName, "signer", "", "Key name in the local key store")
	fs.StringVar(&signerRole, "signer-role", "", "Optional role key of --signer")
	fs.StringVar(&keyFile, "key-file", "", "Path to a seed file")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	b, ok := readArtifact(fs, errOut, "usage: lucim-audit certify --kind <kind> (--seed-hex ... | --signer ... | --key-file ...) <file>")
	if !ok {
		return 2
	}

	var res report.Result
	switch kind {
	case "diagram":
		var err error
		res, err = diagram.AuditWithOptions(string(b), diagram.Options{Raw: string(b)})
		if err != nil {
			fmt.Fprintf(errOut, "audit: %v\n", err)
			return 1
		}
	case "operation-model":
		res = opmodel.AuditWithOptions(b, opmodel.Options{Raw: string(b)})
	case "scenario":
		res = scenario.Audit(string(b))
	default:
		fmt.Fprintf(errOut, "unknown --kind: %s\n", kind)
		return 2
	}

	ks, err := keys.CreateKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	seed, err := ks.LoadSeed(seedHex, signerName, signerRole, keyFile)
	if err != nil {
		fmt.Fprintf(errOut, "load signer: %v\n", err)
		return 1
	}
	signer, err := cert.Ed25519Signer(seed)
	if err != nil {
		fmt.Fprintf(errOut, "signer: %v\n", err)
		return 1
	}

	c, err := cert.Issue(res, cert.Subject{Kind: kind, ArtifactCID: cidutil.CIDv1RawSHA256(b)}, signer)
	if err != nil {
		fmt.Fprintf(errOut, "issue certificate: %v\n", err)
		return 1
	}
	_, _ = out.Write(c.Raw)
	return 0
}

func cmdVerify(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: lucim-audit verify <cert-file>")
		return 2
	}
	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read certificate: %v\n", err)
		return 1
	}
	c, err := cert.Parse(b)
	if err != nil {
		fmt.Fprintf(errOut, "parse certificate: %v\n", err)
		return 1
	}
	if err := c.Verify(); err != nil {
		fmt.Fprintf(errOut, "verify: %v\n", err)
		return 1
	}
	if err := cert.ValidateCoreClaims(c); err != nil {
		fmt.Fprintf(errOut, "validate: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "OK %s %s verdict=%s report=%s\n", c.ArtifactKind(), c.ArtifactCID(), c.Verdict(), c.ReportCID())
	return 0
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printKeyUsage(errOut)
		return 2
	}
	switch args[0] {
	case "init":
		return cmdKeyInit(args[1:], out, errOut)
	case "derive":
		return cmdKeyDerive(args[1:], out, errOut)
	case "list":
		return cmdKeyList(args[1:], out, errOut)
	case "export":
		return cmdKeyExport(args[1:], out, errOut)
	case "help", "-h", "--help":
		printKeyUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n\n", args[0])
		printKeyUsage(errOut)
		return 2
	}
}

func printKeyUsage(w io.Writer) {
	fmt.Fprintln(w, "lucim-audit key: minimal local key management")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  lucim-audit key init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  lucim-audit key derive --from <name> --role <role> [--force]")
	fmt.Fprintln(w, "  lucim-audit key list")
	fmt.Fprintln(w, "  lucim-audit key export --name <name> [--role <role>]")
}

func cmdKeyInit(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key init", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var name string
	var seedHex string
	var force bool

	fs.StringVar(&name, "name", "", "Key name (directory under ~/.lucim-audit/keys)")
	fs.StringVar(&seedHex, "seed-hex", "", "Optional ed25519 seed as 64 hex chars (for reproducible demos)")
	fs.BoolVar(&force, "force", false, "Overwrite existing key files")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	if err := keys.CheckKeyName(name); err != nil {
		fmt.Fprintf(errOut, "invalid --name: %v\n", err)
		return 2
	}
	ks, err := keys.CreateKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}

	var seed []byte
	if seedHex != "" {
		var derr error
		seed, derr = keys.ParseSeedHex(seedHex)
		if derr != nil {
			fmt.Fprintf(errOut, "invalid --seed-hex: %v\n", derr)
			return 2
		}
	} else {
		seed = make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(seed); err != nil {
			fmt.Fprintf(errOut, "rand: %v\n", err)
			return 1
		}
	}

	issuerKey, rootPath, err := ks.InitializeRootKey(name, seed, force)
	if err != nil {
		fmt.Fprintf(errOut, "write key: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Created root key: %s\n", issuerKey)
	fmt.Fprintf(out, "Stored at: %s\n", rootPath)
	return 0
}

func cmdKeyDerive(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key derive", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var from string
	var role string
	var force bool

	fs.StringVar(&from, "from", "", "Root key name")
	fs.StringVar(&role, "role", "", "Role identifier (e.g. auditor, reviewer)")
	fs.BoolVar(&force, "force", false, "Overwrite existing key files")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if from == "" {
		fmt.Fprintln(errOut, "missing --from")
		return 2
	}
	if role == "" {
		fmt.Fprintln(errOut, "missing --role")
		return 2
	}
	ks, err := keys.CreateKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	issuerKey, rolePath, err := ks.DeriveKeyFromRole(from, role, force)
	if err != nil {
		fmt.Fprintf(errOut, "derive role key: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Created role key: %s\n", issuerKey)
	fmt.Fprintf(out, "Stored at: %s\n", rolePath)
	return 0
}

func cmdKeyExport(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key export", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var name string
	var role string

	fs.StringVar(&name, "name", "", "Key name")
	fs.StringVar(&role, "role", "", "Optional role (if set, exports derived role key)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	ks, err := keys.CreateKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	issuerKey, err := ks.ExportKey(name, role)
	if err != nil {
		fmt.Fprintf(errOut, "export key: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, issuerKey)
	return 0
}

func cmdKeyList(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key list", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	ks, err := keys.CreateKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	entries, err := ks.ListKeys()
	if err != nil {
		fmt.Fprintf(errOut, "list keys: %v\n", err)
		return 1
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s\n", e.Identifier)
		for _, r := range e.Permissions {
			fmt.Fprintf(out, "  - %s\n", r)
		}
	}
	return 0
}
