// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package ec2inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"

	"github.com/platform-engineering-labs/aws-inventory/internal/attribute"
	"github.com/platform-engineering-labs/aws-inventory/internal/resolver"
	"github.com/platform-engineering-labs/aws-inventory/pkg/model"
)

// DescribeInstancesAPI is the subset of the EC2 client used by the inventory.
type DescribeInstancesAPI interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

// Compile time checks to satisfy protocol
var _ ec2.DescribeInstancesAPIClient = DescribeInstancesAPI(nil)
var _ resolver.Inventory = &Inventory{}

type Inventory struct {
	api DescribeInstancesAPI
}

func New(api DescribeInstancesAPI) *Inventory {
	return &Inventory{api: api}
}

func NewFromConfig(cfg aws.Config) *Inventory {
	return New(ec2.NewFromConfig(cfg))
}

// Query describes every instance matching filters, across all pages, and
// returns them normalized in the order EC2 reported them.
func (i *Inventory) Query(ctx context.Context, filters []model.Filter) ([]model.Instance, error) {
	input := &ec2.DescribeInstancesInput{Filters: toEC2Filters(filters)}
	paginator := ec2.NewDescribeInstancesPaginator(i.api, input)

	instances := []model.Instance{}
	pages := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			logAPIError(err)
			return nil, err
		}
		pages++

		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				normalized, err := attribute.NormalizeValue(instance)
				if err != nil {
					return nil, fmt.Errorf("failed to normalize instance %s: %w", aws.ToString(instance.InstanceId), err)
				}
				instances = append(instances, normalized)
			}
		}
	}

	slog.Debug("Described EC2 instances", "pages", pages, "instances", len(instances))

	return instances, nil
}

func toEC2Filters(filters []model.Filter) []ec2types.Filter {
	if len(filters) == 0 {
		return nil
	}

	ec2Filters := make([]ec2types.Filter, 0, len(filters))
	for _, filter := range filters {
		ec2Filters = append(ec2Filters, ec2types.Filter{
			Name:   aws.String(filter.Name),
			Values: filter.Values,
		})
	}

	return ec2Filters
}

func logAPIError(err error) {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		slog.Error("EC2 DescribeInstances failed",
			"code", apiErr.ErrorCode(),
			"message", apiErr.ErrorMessage(),
			"fault", apiErr.ErrorFault().String())
		return
	}

	slog.Error("EC2 DescribeInstances failed", "error", err)
}
