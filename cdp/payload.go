package cdp

import (
	"errors"

	"github.com/chromedp/cdproto/cdp"
	"github.com/mailru/easyjson"
	"gopkg.in/guregu/null.v3"

	"github.com/grafana/xk6-abtest/api"
	"github.com/grafana/xk6-abtest/dom"
)

//go:generate easyjson -all payload.go

// clickPayload is sent by the in-page click listener. Nodes run from the
// click target up to the document element.
type clickPayload struct {
	Nodes    []*cdp.Node      `json:"nodes"`
	Handlers []cdp.NodeID     `json:"handlers"`
	Props    []nodeProperties `json:"props"`
}

// nodeProperties carries the live value and type of one of the nodes.
type nodeProperties struct {
	NodeID cdp.NodeID  `json:"nodeId"`
	Value  null.String `json:"value"`
	Type   null.String `json:"type"`
}

var errEmptyPayload = errors.New("click payload carries no nodes")

// decodeClick turns a binding payload into the clicked node, linked to
// its ancestors.
func decodeClick(payload string) (api.Node, error) {
	var p clickPayload
	if err := easyjson.Unmarshal([]byte(payload), &p); err != nil {
		return nil, err
	}
	if len(p.Nodes) == 0 || p.Nodes[0] == nil {
		return nil, errEmptyPayload
	}

	for i, n := range p.Nodes {
		if n == nil {
			return nil, errors.New("click payload carries a null node")
		}
		for _, child := range n.Children {
			child.Parent = n
		}
		if i+1 < len(p.Nodes) {
			n.Parent = p.Nodes[i+1]
		}
	}

	handlers := make(map[cdp.NodeID]bool, len(p.Handlers))
	for _, id := range p.Handlers {
		handlers[id] = true
	}

	props := make(map[cdp.NodeID]dom.Properties, len(p.Props))
	for _, np := range p.Props {
		props[np.NodeID] = dom.Properties{Value: np.Value, Type: np.Type}
	}

	return dom.NewCDPNode(p.Nodes[0], handlers).WithProperties(props), nil
}
