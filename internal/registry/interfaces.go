package registry

// DeploymentRegistry holds the published deployments, keyed by application
type DeploymentRegistry interface {
	// Publish stores d, replacing and returning any deployment of the same
	// application
	Publish(d *Deployment) (previous *Deployment, err error)
	Remove(app string) (*Deployment, bool)
	Get(app string) (*Deployment, bool)
	Apps() []string
	Len() int
}
