package http

// PingController answers liveness probes on /ping with a plain "OK" for any
// method.
type PingController struct {
	routes *Routes
}

// NewPingController creates a new ping controller
func NewPingController() *PingController {
	c := &PingController{}
	c.routes = NewRoutes().Add(AnyMethod, "/ping", c.ping)
	return c
}

// Handle implements Controller
func (c *PingController) Handle(req *Request) (*Response, error) {
	return c.routes.Dispatch(req)
}

func (c *PingController) ping(*Request, Params) (*Response, error) {
	return Text(StatusOK, "OK"), nil
}
