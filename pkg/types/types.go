package types

// App is a Fly app record. OrgSlug is populated when the record came from a
// by-name lookup; the create endpoint does not echo it back.
type App struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	OrgSlug OrgSlug `json:"org_slug,omitempty"`
}

// Secret is an app secret as reported by the list endpoint. Values are
// write-only; the API never returns them.
type Secret struct {
	Name      string `json:"name"`
	Digest    string `json:"digest,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Volume is a Fly volume record.
type Volume struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	State             string  `json:"state"`
	SizeGB            uint32  `json:"size_gb"`
	Region            Region  `json:"region"`
	Zone              string  `json:"zone"`
	Encrypted         bool    `json:"encrypted"`
	AttachedMachineID *string `json:"attached_machine_id"`
	AttachedAllocID   *string `json:"attached_alloc_id"`
	CreatedAt         string  `json:"created_at"`
	Blocks            uint64  `json:"blocks"`
	BlockSize         uint64  `json:"block_size"`
	BlocksFree        uint64  `json:"blocks_free"`
	BlocksAvail       uint64  `json:"blocks_avail"`
	BytesUsed         uint64  `json:"bytes_used"`
	BytesTotal        uint64  `json:"bytes_total"`
	FSType            string  `json:"fstype"`
	SnapshotRetention uint32  `json:"snapshot_retention"`
	AutoBackupEnabled bool    `json:"auto_backup_enabled"`
	HostStatus        string  `json:"host_status"`
}

// VolumeCreateRequest describes a volume to create.
type VolumeCreateRequest struct {
	Name              string  `json:"name"`
	SizeGB            uint32  `json:"size_gb"`
	Region            *Region `json:"region,omitempty"`
	Encrypted         *bool   `json:"encrypted,omitempty"`
	FSType            *string `json:"fstype,omitempty"`
	SnapshotRetention *uint32 `json:"snapshot_retention,omitempty"`
	RequireUniqueZone *bool   `json:"require_unique_zone,omitempty"`
}
