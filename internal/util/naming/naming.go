package naming

import "fmt"

// Naming functions for job artifacts.
// Release names and remote object keys follow consistent patterns so
// that jobs can be identified and cleaned up by name alone.

// FullJobName combines the operator-supplied job name with the
// generated job identifier to form the release name.
func FullJobName(jobName, jobID string) string {
	return fmt.Sprintf("%s-%s", jobName, jobID)
}

// JobFolder is the per-job key prefix inside the artifact bucket.
func JobFolder(jobID string) string {
	return fmt.Sprintf("job-folders/job-%s", jobID)
}

// CodeBundleKey is the object key of the compressed code tree.
func CodeBundleKey(jobID string) string {
	return fmt.Sprintf("%s/rllm.tar.gz", JobFolder(jobID))
}

// ConfigKey is the object key of the training config.
func ConfigKey(jobID string) string {
	return fmt.Sprintf("%s/config.yaml", JobFolder(jobID))
}
