// Package values loads a Helm values template and rewrites the handful
// of fields that vary per launch: node count, the wandb secret
// reference, the single-node master address, and the region suffix of
// mounted checkpoint buckets.
package values
