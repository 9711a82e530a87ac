package k8s

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// Client wraps the Kubernetes clientset for pre-deploy checks.
type Client struct {
	clientset kubernetes.Interface
}

// NewFromKubeconfig builds a client from the ambient kubeconfig using
// the standard loading rules (KUBECONFIG, then ~/.kube/config).
func NewFromKubeconfig() (*Client, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	cfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return &Client{clientset: clientset}, nil
}

// NewWithClientset wraps an existing clientset. Used by tests.
func NewWithClientset(clientset kubernetes.Interface) *Client {
	return &Client{clientset: clientset}
}

// NamespaceExists reports whether the namespace is present. A typo'd
// namespace fails the launch before any artifact is uploaded.
func (c *Client) NamespaceExists(ctx context.Context, name string) (bool, error) {
	_, err := c.clientset.CoreV1().Namespaces().Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check namespace %s: %w", name, err)
	}
	return true, nil
}
