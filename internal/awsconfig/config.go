// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package awsconfig

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/platform-engineering-labs/aws-inventory/internal/util"
)

type Config struct {
	Region  string `json:"region,omitempty"`
	Profile string `json:"profile,omitempty"`
	// Credentials is the path to a shared credentials file.
	Credentials string `json:"credentials,omitempty"`
}

// Validate checks the parts of the configuration that can be verified
// without talking to AWS.
func (c *Config) Validate() error {
	if c.Credentials == "" {
		return nil
	}

	path := c.CredentialsPath()
	if !util.FileExists(path) {
		return fmt.Errorf("credentials file %s does not exist", path)
	}

	return nil
}

func (c *Config) CredentialsPath() string {
	return util.ExpandHomePath(c.Credentials)
}

func (c *Config) ToAwsConfig(ctx context.Context) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error

	if c.Region != "" {
		opts = append(opts, awsconfig.WithRegion(c.Region))
	}
	if c.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(c.Profile))
	}
	if c.Credentials != "" {
		opts = append(opts, awsconfig.WithSharedCredentialsFiles([]string{c.CredentialsPath()}))
	}

	return awsconfig.LoadDefaultConfig(ctx, opts...)
}
