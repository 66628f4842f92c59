package docker

import "context"

// CreateVolume creates a named volume. An existing volume of that name is
// success.
func (c *CLI) CreateVolume(ctx context.Context, name string) (string, error) {
	exists, err := c.checkExists(ctx, "volume", name)
	if err != nil {
		return "", err
	}
	if exists {
		return name, nil
	}

	// Output is the volume name; return the requested name either way.
	if _, err := c.run(ctx, "volume", "create", name); err != nil {
		return "", err
	}
	return name, nil
}

// RemoveVolume removes a volume. A missing volume is success.
func (c *CLI) RemoveVolume(ctx context.Context, name string) error {
	exists, err := c.checkExists(ctx, "volume", name)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	_, err = c.run(ctx, "volume", "rm", name)
	return err
}

// VolumeExists reports whether a named volume exists.
func (c *CLI) VolumeExists(ctx context.Context, name string) (bool, error) {
	return c.checkExists(ctx, "volume", name)
}
