package adapters

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/ejbmeta/internal/assembler"
	"github.com/toyz/ejbmeta/internal/descriptor"
	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/internal/metrics"
	"github.com/toyz/ejbmeta/internal/registry"
	"github.com/toyz/ejbmeta/pkg/inspect"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// server pairs an adapter with a way to drive requests through it in-process
type server struct {
	ws    inspect.WebServer
	serve func(t *testing.T, req *http.Request) (int, []byte)
}

func servers() []server {
	ga := NewDefaultGinAdapter()
	ea := NewDefaultEchoAdapter()
	fa := NewDefaultFiberAdapter()

	recorded := func(h http.Handler) func(t *testing.T, req *http.Request) (int, []byte) {
		return func(t *testing.T, req *http.Request) (int, []byte) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			return rec.Code, rec.Body.Bytes()
		}
	}

	return []server{
		{ws: ga, serve: recorded(ga.Engine())},
		{ws: ea, serve: recorded(ea.Echo())},
		{ws: fa, serve: func(t *testing.T, req *http.Request) (int, []byte) {
			resp, err := fa.App().Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			return resp.StatusCode, body
		}},
	}
}

func deployShop(t *testing.T, recorder metrics.Recorder) registry.DeploymentRegistry {
	t.Helper()
	jar, err := descriptor.NewLoader().Load(filepath.Join("..", "..", "..", "internal", "descriptor", "testdata", "shop.yaml"))
	require.NoError(t, err)

	reg := registry.NewDeploymentRegistry()
	log, _ := test.NewNullLogger()
	asm, err := assembler.New(nil, log, recorder, reg)
	require.NoError(t, err)
	_, err = asm.Deploy(jar)
	require.NoError(t, err)
	return reg
}

func TestAdapters(t *testing.T) {
	collector := metrics.NewCollector("")
	reg := deployShop(t, collector)
	log, _ := test.NewNullLogger()

	for _, srv := range servers() {
		t.Run(srv.ws.Name(), func(t *testing.T) {
			inspect.NewAPI(reg, collector.Handler(), log).Register(srv.ws)

			t.Run("list deployments", func(t *testing.T) {
				code, body := srv.serve(t, httptest.NewRequest(http.MethodGet, "/deployments", nil))
				require.Equal(t, http.StatusOK, code)

				var views []inspect.DeploymentView
				require.NoError(t, json.Unmarshal(body, &views))
				require.Len(t, views, 1)
				assert.Equal(t, "shop", views[0].App)
				assert.Equal(t, []string{"orderDb", "orderPool"}, views[0].Resources)
			})

			t.Run("bean", func(t *testing.T) {
				code, body := srv.serve(t, httptest.NewRequest(http.MethodGet, "/deployments/shop/beans/Inventory?method=reserve", nil))
				require.Equal(t, http.StatusOK, code)

				var view inspect.BeanView
				require.NoError(t, json.Unmarshal(body, &view))
				assert.Equal(t, "Inventory", view.EjbName)
				require.Len(t, view.Methods, 2)
				for _, m := range view.Methods {
					assert.Equal(t, "Mandatory", m.Transaction)
					assert.Equal(t, []string{"org.shop.Timing"}, m.Interceptors, m.Key)
				}
				assert.Equal(t, "Read", view.Methods[0].Lock)
				assert.Equal(t, "250 MILLISECONDS", view.Methods[0].AccessTimeout)
				assert.Empty(t, view.Methods[1].Lock)
			})

			t.Run("not found", func(t *testing.T) {
				code, body := srv.serve(t, httptest.NewRequest(http.MethodGet, "/deployments/billing", nil))
				assert.Equal(t, http.StatusNotFound, code)

				var msg map[string]string
				require.NoError(t, json.Unmarshal(body, &msg))
				assert.Contains(t, msg["error"], "billing")
			})

			t.Run("metrics", func(t *testing.T) {
				code, body := srv.serve(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
				require.Equal(t, http.StatusOK, code)
				assert.Contains(t, string(body), `ejbmeta_deploy_total{app="shop",result="success"} 1`)
				assert.Contains(t, string(body), "ejbmeta_deployments 1")
			})
		})
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"gin", "Echo", "FIBER"} {
		ws, err := New(name)
		require.NoError(t, err)
		assert.NotNil(t, ws)
	}

	_, err := New("chi")
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
}
