package fly

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obeli-sk/components-flyio/pkg/types"
)

const volumeFixture = `{
    "id": "vol_vjeylkgg6gll7j94",
    "name": "my_app_vol",
    "state": "created",
    "size_gb": 1,
    "region": "ams",
    "zone": "119a",
    "encrypted": true,
    "attached_machine_id": null,
    "attached_alloc_id": null,
    "created_at": "2025-09-13T09:27:18.803Z",
    "blocks": 0,
    "block_size": 0,
    "blocks_free": 0,
    "blocks_avail": 0,
    "bytes_used": 0,
    "bytes_total": 0,
    "fstype": "ext4",
    "snapshot_retention": 5,
    "auto_backup_enabled": true,
    "host_status": "ok",
    "host_dedication_key": ""
  }`

func TestGetVolumeDeserialization(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/apps/demo/volumes/vol-1", r.URL.Path)
		_, _ = w.Write([]byte(volumeFixture))
	}))

	volume, err := client.GetVolume(context.Background(), "demo", "vol-1")
	assert.NoError(t, err)
	if !assert.NotNil(t, volume) {
		return
	}
	assert.Equal(t, "vol_vjeylkgg6gll7j94", volume.ID)
	assert.Equal(t, "my_app_vol", volume.Name)
	assert.Equal(t, "created", volume.State)
	assert.Equal(t, uint32(1), volume.SizeGB)
	assert.Equal(t, types.RegionAms, volume.Region)
	assert.True(t, volume.Encrypted)
	assert.Nil(t, volume.AttachedMachineID)
	assert.Equal(t, "ext4", volume.FSType)
	assert.Equal(t, uint32(5), volume.SnapshotRetention)
}

func TestCreateVolumeRequestShape(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(volumeFixture))
	}))

	region := types.RegionAms
	_, err := client.CreateVolume(context.Background(), "demo", types.VolumeCreateRequest{
		Name:   "my_app_vol",
		SizeGB: 1,
		Region: &region,
	})
	assert.NoError(t, err)
	assert.Equal(t, "my_app_vol", gotBody["name"])
	assert.Equal(t, float64(1), gotBody["size_gb"])
	assert.Equal(t, "ams", gotBody["region"])
	// Optional fields stay off the wire when unset.
	_, hasEncrypted := gotBody["encrypted"]
	assert.False(t, hasEncrypted)
}

func TestExtendVolume(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
	}))

	assert.NoError(t, client.ExtendVolume(context.Background(), "demo", "vol-1", 10))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/apps/demo/volumes/vol-1/extend", gotPath)
	assert.Equal(t, float64(10), gotBody["size_gb"])
}
