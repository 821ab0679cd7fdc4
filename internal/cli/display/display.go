// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

import (
	"fmt"
	"io"
	"os"
)

// Messages go to stderr so that stdout only ever carries command output.
var Out io.Writer = os.Stderr

func Error(msg string) {
	fmt.Fprint(Out, Red(fmt.Sprintf("Error: %s\n", msg)))
}

func Links() string {
	return "\n" + Gold("Code: ") + RepoURL +
		"\n" + Gold("Bugs: ") + RepoURL + "/issues"
}
