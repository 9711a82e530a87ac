// Package naming provides consistent naming functions for job artifacts.
//
// Release names follow the pattern {job}-{8char} and remote objects live
// under job-folders/job-{8char}/ in the artifact bucket. The random
// suffix prevents release-name collisions across repeated launches.
package naming
