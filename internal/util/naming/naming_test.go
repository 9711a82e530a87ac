package naming

import "testing"

func TestNamingFunctions(t *testing.T) {
	jobID := "deadbeef"

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"FullJobName", FullJobName("rllm-debug-qwen1b", jobID), "rllm-debug-qwen1b-deadbeef"},
		{"JobFolder", JobFolder(jobID), "job-folders/job-deadbeef"},
		{"CodeBundleKey", CodeBundleKey(jobID), "job-folders/job-deadbeef/rllm.tar.gz"},
		{"ConfigKey", ConfigKey(jobID), "job-folders/job-deadbeef/config.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
