package dispatch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/spark/core/controller"
	"github.com/dmitrymomot/spark/core/dispatch"
	"github.com/dmitrymomot/spark/core/refine"
	"github.com/dmitrymomot/spark/core/response"
	"github.com/dmitrymomot/spark/core/view"
)

// compile mounts one controller and returns a dispatcher over the resulting
// table and hooks. An empty base uses the controller's default path; a nil fn
// compiles the default route conventions.
func compile(ctl *controller.Controller, base string, fn func(m *refine.Mounter), opts ...dispatch.Option) *dispatch.Dispatcher {
	b := refine.New()
	b.Mount(ctl, base, fn)
	return dispatch.New(b.Table(), b.Hooks(), opts...)
}

func perform(d *dispatch.Dispatcher, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	d.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestDispatchPipeline(t *testing.T) {
	t.Parallel()

	t.Run("runs hooks around the action, specific before wildcard", func(t *testing.T) {
		t.Parallel()

		var order []string
		ctl := controller.New("one")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			order = append(order, "action")
			return "ok", nil
		}})

		d := compile(ctl, "/", func(m *refine.Mounter) {
			m.Get("index")
			m.Before(func(ctx controller.Ctx) error {
				order = append(order, "before-all")
				return nil
			})
			m.Before(func(ctx controller.Ctx) error {
				order = append(order, "before-index")
				return nil
			}, "index")
			m.After(func(ctx controller.Ctx) error {
				order = append(order, "after")
				return nil
			})
		})

		rec := perform(d, http.MethodGet, "/index")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"before-index", "before-all", "action", "after"}, order)
	})

	t.Run("string body is served as HTML", func(t *testing.T) {
		t.Parallel()

		ctl := controller.New("one")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			return "<h1>hi</h1>", nil
		}})

		rec := perform(compile(ctl, "", nil), http.MethodGet, "/one")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "<h1>hi</h1>", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	})

	t.Run("struct body is served as JSON", func(t *testing.T) {
		t.Parallel()

		ctl := controller.New("one")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			return map[string]any{"status": "ok"}, nil
		}})

		rec := perform(compile(ctl, "", nil), http.MethodGet, "/one")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	})

	t.Run("response body passes through untouched", func(t *testing.T) {
		t.Parallel()

		ctl := controller.New("one")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			return response.String("plain", http.StatusAccepted), nil
		}})

		rec := perform(compile(ctl, "", nil), http.MethodGet, "/one")
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "plain", rec.Body.String())
	})

	t.Run("extracts path placeholders", func(t *testing.T) {
		t.Parallel()

		ctl := controller.New("users")
		ctl.Actions().Add(controller.Action{
			Name:   "show",
			Params: []controller.Param{{Name: "id"}},
			Handler: func(ctx controller.Ctx) (any, error) {
				return "user " + ctx.Param("id"), nil
			},
		})

		rec := perform(compile(ctl, "", nil), http.MethodGet, "/users/42")
		assert.Equal(t, "user 42", rec.Body.String())
	})

	t.Run("assigns a request identifier", func(t *testing.T) {
		t.Parallel()

		ctl := controller.New("one")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			return "ok", nil
		}})

		rec := perform(compile(ctl, "", nil), http.MethodGet, "/one")
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("before hook failure skips the action", func(t *testing.T) {
		t.Parallel()

		invoked := false
		ctl := controller.New("one")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			invoked = true
			return "ok", nil
		}})

		d := compile(ctl, "/", func(m *refine.Mounter) {
			m.Get("index")
			m.Before(func(ctx controller.Ctx) error {
				return response.ErrForbidden
			})
		})

		rec := perform(d, http.MethodGet, "/index")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, invoked)
	})
}

func TestDispatchRedirect(t *testing.T) {
	t.Parallel()

	t.Run("defaults to 302", func(t *testing.T) {
		t.Parallel()

		ctl := controller.New("one")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			return nil, ctx.Redirect("/elsewhere")
		}})

		rec := perform(compile(ctl, "", nil), http.MethodGet, "/one")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/elsewhere", rec.Header().Get("Location"))
	})

	t.Run("explicit status overrides the default", func(t *testing.T) {
		t.Parallel()

		ctl := controller.New("one")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			return nil, ctx.Redirect("/moved", http.StatusMovedPermanently)
		}})

		rec := perform(compile(ctl, "", nil), http.MethodGet, "/one")
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	})

	t.Run("reverse-routed redirect does not mutate the args map", func(t *testing.T) {
		t.Parallel()

		ctl := controller.New("users")
		args := map[string]any{"id": "7", "tab": "posts"}
		ctl.Actions().
			Add(controller.Action{
				Name:   "show",
				Params: []controller.Param{{Name: "id"}},
				Handler: func(ctx controller.Ctx) (any, error) {
					return "shown", nil
				},
			}).
			Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
				return nil, ctx.RedirectTo(nil, "show", args)
			}})

		rec := perform(compile(ctl, "", nil), http.MethodGet, "/users")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/users/7?tab=posts", rec.Header().Get("Location"))
		assert.Equal(t, map[string]any{"id": "7", "tab": "posts"}, args)
	})
}

func TestDispatchReroute(t *testing.T) {
	t.Parallel()

	t.Run("target action runs on the same context and settles the body", func(t *testing.T) {
		t.Parallel()

		var mainCtx, altCtx controller.Ctx
		ctl := controller.New("one")
		ctl.Actions().
			Add(controller.Action{Name: "alt", Handler: func(ctx controller.Ctx) (any, error) {
				altCtx = ctx
				return "from alt", nil
			}}).
			Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
				mainCtx = ctx
				return ctx.Reroute(nil, "alt")
			}})

		rec := perform(compile(ctl, "", nil), http.MethodGet, "/one")
		assert.Equal(t, "from alt", rec.Body.String())
		assert.Same(t, mainCtx, altCtx)
	})

	t.Run("skips remaining after hooks", func(t *testing.T) {
		t.Parallel()

		afterRan := false
		ctl := controller.New("one")
		ctl.Actions().
			Add(controller.Action{Name: "alt", Handler: func(ctx controller.Ctx) (any, error) {
				return "settled", nil
			}}).
			Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
				return ctx.Reroute(nil, "alt")
			}})

		d := compile(ctl, "/", func(m *refine.Mounter) {
			m.Get("index")
			m.Get("alt")
			m.After(func(ctx controller.Ctx) error {
				afterRan = true
				return nil
			}, "index")
		})

		rec := perform(d, http.MethodGet, "/index")
		assert.Equal(t, "settled", rec.Body.String())
		assert.False(t, afterRan)
	})

	t.Run("empty action reroutes to index", func(t *testing.T) {
		t.Parallel()

		ctl := controller.New("one")
		ctl.Actions().
			Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
				return "index body", nil
			}}).
			Add(controller.Action{Name: "other", Handler: func(ctx controller.Ctx) (any, error) {
				return ctx.Reroute(nil, "")
			}})

		rec := perform(compile(ctl, "", nil), http.MethodGet, "/one/other")
		assert.Equal(t, "index body", rec.Body.String())
	})
}

func TestDispatchErrors(t *testing.T) {
	t.Parallel()

	t.Run("error hook keyed by the error's status recovers", func(t *testing.T) {
		t.Parallel()

		ctl := controller.New("one")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			return nil, response.ErrNotFound
		}})

		d := compile(ctl, "/", func(m *refine.Mounter) {
			m.Get("index")
			m.Error(func(ctx controller.Ctx, err error) (any, error) {
				return "custom not found", nil
			}, http.StatusNotFound)
		})

		rec := perform(d, http.MethodGet, "/index")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "custom not found", rec.Body.String())
	})

	t.Run("falls back to the 500 hook for unkeyed statuses", func(t *testing.T) {
		t.Parallel()

		ctl := controller.New("one")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			return nil, response.ErrForbidden
		}})

		d := compile(ctl, "/", func(m *refine.Mounter) {
			m.Get("index")
			m.Error(func(ctx controller.Ctx, err error) (any, error) {
				return "generic failure", nil
			})
		})

		rec := perform(d, http.MethodGet, "/index")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "generic failure", rec.Body.String())
	})

	t.Run("failing hooks propagate to the terminal handler", func(t *testing.T) {
		t.Parallel()

		ctl := controller.New("one")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			return nil, response.ErrNotFound
		}})

		d := compile(ctl, "/", func(m *refine.Mounter) {
			m.Get("index")
			m.Error(func(ctx controller.Ctx, err error) (any, error) {
				return nil, err
			}, http.StatusNotFound)
		})

		rec := perform(d, http.MethodGet, "/index")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unmatched request is terminal and skips hooks", func(t *testing.T) {
		t.Parallel()

		hookRan := false
		ctl := controller.New("one")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			return "ok", nil
		}})

		d := compile(ctl, "/only", func(m *refine.Mounter) {
			m.Get("index")
			m.Error(func(ctx controller.Ctx, err error) (any, error) {
				hookRan = true
				return "recovered", nil
			}, http.StatusNotFound)
		})

		rec := perform(d, http.MethodGet, "/nothing/matches/this")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, hookRan)
	})

	t.Run("panic in an action becomes a 500", func(t *testing.T) {
		t.Parallel()

		ctl := controller.New("one")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			panic("boom")
		}})

		rec := perform(compile(ctl, "", nil), http.MethodGet, "/one")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("custom terminal handler takes over", func(t *testing.T) {
		t.Parallel()

		ctl := controller.New("one")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			return nil, response.ErrNotFound
		}})

		d := compile(ctl, "", nil, dispatch.WithErrorHandler(func(ctx *dispatch.Context, err error) {
			http.Error(ctx.ResponseWriter(), "custom terminal", http.StatusTeapot)
		}))

		rec := perform(d, http.MethodGet, "/one")
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Contains(t, rec.Body.String(), "custom terminal")
	})
}

func TestDispatchNearestFallback(t *testing.T) {
	t.Parallel()

	ctl := controller.New("pages")
	ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
		return "pages index", nil
	}})

	d := compile(ctl, "/", func(m *refine.Mounter) {
		m.Get("/", "index")
	})

	// Trailing unmatched segments fall back to the nearest routed ancestor.
	rec := perform(d, http.MethodGet, "/deeply/nested/unknown")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pages index", rec.Body.String())
}

// recordingRenderer captures what the dispatch context hands the view layer.
type recordingRenderer struct {
	template   string
	controller string
	opts       view.Options
	out        string
}

func (r *recordingRenderer) Render(_ context.Context, template, controllerName string, locals map[string]any, opts view.Options) (string, error) {
	r.template = template
	r.controller = controllerName
	r.opts = opts
	return r.out, nil
}

func TestDispatchRender(t *testing.T) {
	t.Parallel()

	t.Run("resolves against the current controller", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{out: "<p>rendered</p>"}
		ctl := controller.New("pages")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			return ctx.Render("home", nil)
		}})

		rec := perform(compile(ctl, "", nil, dispatch.WithView(renderer)), http.MethodGet, "/pages")
		assert.Equal(t, "<p>rendered</p>", rec.Body.String())
		assert.Equal(t, "home", renderer.template)
		assert.Equal(t, "pages", renderer.controller)
		assert.Equal(t, view.Options{}, renderer.opts)
	})

	t.Run("per-call options reach the renderer", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{out: "bare"}
		ctl := controller.New("pages")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			return ctx.Render("partial", nil, view.Options{Layout: view.Bool(false), Cache: view.Bool(true)})
		}})

		rec := perform(compile(ctl, "", nil, dispatch.WithView(renderer)), http.MethodGet, "/pages")
		assert.Equal(t, "bare", rec.Body.String())
		require.NotNil(t, renderer.opts.Layout)
		assert.False(t, *renderer.opts.Layout)
		require.NotNil(t, renderer.opts.Cache)
		assert.True(t, *renderer.opts.Cache)
	})

	t.Run("no renderer configured errors", func(t *testing.T) {
		t.Parallel()

		ctl := controller.New("pages")
		ctl.Actions().Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			return ctx.Render("home", nil)
		}})

		rec := perform(compile(ctl, "", nil), http.MethodGet, "/pages")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestDispatchReverseRouting(t *testing.T) {
	t.Parallel()

	ctl := controller.New("users")
	ctl.Actions().
		Add(controller.Action{
			Name:   "show",
			Params: []controller.Param{{Name: "id"}},
			Handler: func(ctx controller.Ctx) (any, error) {
				return "shown", nil
			},
		}).
		Add(controller.Action{Name: "index", Handler: func(ctx controller.Ctx) (any, error) {
			path, err := ctx.PathTo(nil, "show", map[string]any{"id": "9"})
			if err != nil {
				return nil, err
			}
			return ctx.URLTo(path), nil
		}})

	rec := perform(compile(ctl, "", nil), http.MethodGet, "/users")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://example.com/users/9", rec.Body.String())
}
