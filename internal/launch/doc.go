// Package launch orchestrates one training-job deployment: package the
// code tree, upload artifacts, render the values document, and replace
// the Helm release. The pipeline is strictly sequential and one-shot.
package launch
