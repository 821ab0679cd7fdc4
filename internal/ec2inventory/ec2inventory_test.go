// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package ec2inventory

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/aws-inventory/internal/attribute"
	"github.com/platform-engineering-labs/aws-inventory/pkg/model"
)

// fakeEC2 serves one output per call, keyed by the NextToken of the request.
type fakeEC2 struct {
	pages  map[string]*ec2.DescribeInstancesOutput
	err    error
	inputs []*ec2.DescribeInstancesInput
}

func (f *fakeEC2) DescribeInstances(_ context.Context, params *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[aws.ToString(params.NextToken)], nil
}

func runningInstance(id, ip, dns string) ec2types.Instance {
	return ec2types.Instance{
		InstanceId:      aws.String(id),
		PublicIpAddress: aws.String(ip),
		PublicDnsName:   aws.String(dns),
		State:           &ec2types.InstanceState{Code: aws.Int32(16), Name: ec2types.InstanceStateNameRunning},
	}
}

func TestQuery(t *testing.T) {
	t.Run("flattens reservations and pages in order", func(t *testing.T) {
		api := &fakeEC2{pages: map[string]*ec2.DescribeInstancesOutput{
			"": {
				Reservations: []ec2types.Reservation{
					{Instances: []ec2types.Instance{
						runningInstance("i-1", "255.255.255.255", "test-instance-1"),
						runningInstance("i-2", "127.0.0.1", "test-instance-2"),
					}},
					{Instances: []ec2types.Instance{
						runningInstance("i-3", "10.0.0.3", "test-instance-3"),
					}},
				},
				NextToken: aws.String("page-2"),
			},
			"page-2": {
				Reservations: []ec2types.Reservation{
					{Instances: []ec2types.Instance{
						runningInstance("i-4", "10.0.0.4", "test-instance-4"),
					}},
				},
			},
		}}

		instances, err := New(api).Query(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, instances, 4)
		assert.Len(t, api.inputs, 2)

		for i, id := range []string{"i-1", "i-2", "i-3", "i-4"} {
			value, ok := attribute.Get(instances[i], "instance_id")
			assert.True(t, ok)
			assert.Equal(t, id, value)
		}

		value, ok := attribute.Get(instances[0], "state.name")
		assert.True(t, ok)
		assert.Equal(t, "running", value)
	})

	t.Run("sends filters to EC2", func(t *testing.T) {
		api := &fakeEC2{pages: map[string]*ec2.DescribeInstancesOutput{"": {}}}

		_, err := New(api).Query(context.Background(), []model.Filter{
			{Name: "tag:Owner", Values: []string{"foo"}},
			{Name: "instance-state-name", Values: []string{"running"}},
		})
		require.NoError(t, err)
		require.Len(t, api.inputs, 1)

		assert.Equal(t, []ec2types.Filter{
			{Name: aws.String("tag:Owner"), Values: []string{"foo"}},
			{Name: aws.String("instance-state-name"), Values: []string{"running"}},
		}, api.inputs[0].Filters)
	})

	t.Run("returns an empty list when nothing matches", func(t *testing.T) {
		api := &fakeEC2{pages: map[string]*ec2.DescribeInstancesOutput{"": {}}}

		instances, err := New(api).Query(context.Background(), nil)
		require.NoError(t, err)
		assert.NotNil(t, instances)
		assert.Empty(t, instances)
	})

	t.Run("returns API errors unchanged", func(t *testing.T) {
		apiErr := &smithy.GenericAPIError{Code: "AuthFailure", Message: "AWS was not able to validate the provided access credentials"}
		api := &fakeEC2{err: apiErr}

		instances, err := New(api).Query(context.Background(), nil)
		assert.Nil(t, instances)
		assert.ErrorIs(t, err, apiErr)
		assert.Equal(t, apiErr.Error(), err.Error())
	})
}

func TestToEC2Filters(t *testing.T) {
	assert.Nil(t, toEC2Filters(nil))
	assert.Equal(t, []ec2types.Filter{{Name: aws.String("vpc-id"), Values: []string{"vpc-1", "vpc-2"}}},
		toEC2Filters([]model.Filter{{Name: "vpc-id", Values: []string{"vpc-1", "vpc-2"}}}))
}
