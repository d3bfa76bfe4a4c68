package js

import (
	_ "embed"
)

// ClickListenerScript installs, once per document, the capturing click
// listener that reports the clicked ancestor chain through the
// __abtestClick binding. It also creates the default window.testeab
// object.
//
//go:embed click_listener.js
var ClickListenerScript string

// StatePublishScript is a function expression taking the SDK state
// snapshot and copying it into window.testeab in place.
//
//go:embed state_publish.js
var StatePublishScript string
