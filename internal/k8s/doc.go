// Package k8s provides the small slice of Kubernetes API access the
// launcher needs before handing off to Helm: namespace preflight.
package k8s
