package docker

import "context"

// CreateNetwork creates a network, passing the driver when given. An
// existing network of that name is success; its name is returned since the
// CLI accepts names wherever it accepts ids.
func (c *CLI) CreateNetwork(ctx context.Context, name, driver string) (string, error) {
	exists, err := c.checkExists(ctx, "network", name)
	if err != nil {
		return "", err
	}
	if exists {
		return name, nil
	}

	args := []string{"network", "create"}
	if driver != "" {
		args = append(args, "--driver", driver)
	}
	args = append(args, name)

	return c.run(ctx, args...)
}

// RemoveNetwork removes a network. A missing network is success.
func (c *CLI) RemoveNetwork(ctx context.Context, name string) error {
	exists, err := c.checkExists(ctx, "network", name)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	_, err = c.run(ctx, "network", "rm", name)
	return err
}

// PruneNetworks removes all unused networks.
func (c *CLI) PruneNetworks(ctx context.Context) error {
	_, err := c.run(ctx, "network", "prune", "-f")
	return err
}
