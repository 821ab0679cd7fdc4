// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

const (
	Tool    = "aws-inventory"
	RepoURL = "https://github.com/platform-engineering-labs/aws-inventory"
)
