package registry

import (
	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/internal/utils"
)

// deploymentRegistry implements DeploymentRegistry on utils.BaseRegistry
type deploymentRegistry struct {
	items *utils.BaseRegistry[string, *Deployment]
}

// NewDeploymentRegistry creates an empty registry
func NewDeploymentRegistry() DeploymentRegistry {
	items := utils.NewBaseRegistry[string, *Deployment]("deployment", "application")
	items.SetValidator(utils.ChainValidators(
		utils.NotEmptyKeyValidator[*Deployment]("application name"),
		utils.NotNilValueValidator[string, Deployment]("deployment"),
	))
	return &deploymentRegistry{items: items}
}

func (r *deploymentRegistry) Publish(d *Deployment) (*Deployment, error) {
	app := ""
	if d != nil {
		app = d.App
	}
	previous, _, err := r.items.Swap(app, d)
	if err != nil {
		return nil, errors.NewRegistrationError("deployment", app, err.Error())
	}
	return previous, nil
}

func (r *deploymentRegistry) Remove(app string) (*Deployment, bool) {
	return r.items.Delete(app)
}

func (r *deploymentRegistry) Get(app string) (*Deployment, bool) {
	return r.items.Get(app)
}

func (r *deploymentRegistry) Apps() []string {
	return r.items.Keys()
}

func (r *deploymentRegistry) Len() int {
	return r.items.Size()
}
