// Command born-tta prepares test-time augmented inputs and merges the
// resulting predictions.
package main

import "github.com/born-ml/tta/internal/cli"

func main() {
	cli.Execute()
}
