package casregistry

// Usage restricts which programs should accept a given backend.
type Usage uint8

const (
	// UsageCLI marks backends available in the lucim-audit CLI.
	UsageCLI Usage = 1 << iota
	// UsageDaemon marks backends available in the lucim-auditd daemon.
	UsageDaemon
)

func (u Usage) allows(want Usage) bool { return u&want != 0 }
