package types

// Machine is the canonical view of a Fly machine as returned by the
// Machines API. Fields the control plane reports but callers never act on
// (events, image refs) are omitted.
type Machine struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	State      string        `json:"state"`
	Region     Region        `json:"region"`
	InstanceID string        `json:"instance_id"`
	CreatedAt  string        `json:"created_at"`
	UpdatedAt  string        `json:"updated_at"`
	HostStatus HostStatus    `json:"host_status"`
	Config     MachineConfig `json:"config"`
}

// HostStatus reports the health of the host a machine is placed on.
type HostStatus string

const (
	HostStatusOK          HostStatus = "ok"
	HostStatusUnknown     HostStatus = "unknown"
	HostStatusUnreachable HostStatus = "unreachable"
)

// CPUKind selects the machine CPU class.
type CPUKind string

const (
	CPUKindShared      CPUKind = "shared"
	CPUKindPerformance CPUKind = "performance"
)

// RestartPolicy controls when a stopped machine is restarted.
type RestartPolicy string

const (
	RestartPolicyNo        RestartPolicy = "no"
	RestartPolicyAlways    RestartPolicy = "always"
	RestartPolicyOnFailure RestartPolicy = "on-failure"
)

// ServiceProtocol is the transport protocol of an exposed service.
type ServiceProtocol string

const (
	ServiceProtocolTCP ServiceProtocol = "tcp"
	ServiceProtocolUDP ServiceProtocol = "udp"
)

// PortHandler is a Fly edge connection handler.
type PortHandler string

const (
	PortHandlerHTTP       PortHandler = "http"
	PortHandlerTLS        PortHandler = "tls"
	PortHandlerEdgeHTTP   PortHandler = "edge-http"
	PortHandlerPgTLS      PortHandler = "pg-tls"
	PortHandlerProxyProto PortHandler = "proxy-proto"
)

// MachineConfig describes the desired shape of a machine.
type MachineConfig struct {
	Image       string            `json:"image"`
	Guest       *GuestConfig      `json:"guest,omitempty"`
	AutoDestroy *bool             `json:"auto_destroy,omitempty"`
	Init        *InitConfig       `json:"init,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
	Restart     *MachineRestart   `json:"restart,omitempty"`
	StopConfig  *StopConfig       `json:"stop_config,omitempty"`
	Mounts      []Mount           `json:"mounts,omitempty"`
	Services    []ServiceConfig   `json:"services,omitempty"`
}

// GuestConfig sizes the machine VM.
type GuestConfig struct {
	CPUKind    *CPUKind `json:"cpu_kind,omitempty"`
	CPUs       *uint64  `json:"cpus,omitempty"`
	MemoryMB   *uint64  `json:"memory_mb,omitempty"`
	KernelArgs []string `json:"kernel_args,omitempty"`
}

// InitConfig overrides the image entrypoint and init behavior.
type InitConfig struct {
	Cmd        []string `json:"cmd,omitempty"`
	Entrypoint []string `json:"entrypoint,omitempty"`
	Exec       []string `json:"exec,omitempty"`
	KernelArgs []string `json:"kernel_args,omitempty"`
	SwapSizeMB *uint64  `json:"swap_size_mb,omitempty"`
	TTY        *bool    `json:"tty,omitempty"`
}

// MachineRestart configures the restart policy.
type MachineRestart struct {
	MaxRetries *uint32       `json:"max_retries,omitempty"`
	Policy     RestartPolicy `json:"policy"`
}

// StopConfig configures graceful stop.
type StopConfig struct {
	Signal  *string `json:"signal,omitempty"`
	Timeout *uint64 `json:"timeout,omitempty"`
}

// Mount attaches a volume at a path inside the machine.
type Mount struct {
	Volume string `json:"volume"`
	Path   string `json:"path"`
}

// ServiceConfig exposes an internal port through the Fly proxy.
type ServiceConfig struct {
	InternalPort uint16          `json:"internal_port"`
	Protocol     ServiceProtocol `json:"protocol"`
	Ports        []PortConfig    `json:"ports"`
}

// PortConfig binds an edge port to a set of handlers.
type PortConfig struct {
	Port     uint16        `json:"port"`
	Handlers []PortHandler `json:"handlers"`
}

// ExecResult is the outcome of running a command inside a machine.
type ExecResult struct {
	ExitCode   *int32  `json:"exit_code"`
	ExitSignal *int32  `json:"exit_signal"`
	Stdout     *string `json:"stdout"`
	Stderr     *string `json:"stderr"`
}
