// Package content builds the scripts every window runs at document start and
// the snippets the coordinator evaluates on the host's behalf.
package content

import (
	_ "embed"
	"fmt"

	"github.com/bnema/nativewindow/internal/domain/security"
)

// MessageHandlerName is the native message handler page posts are routed to.
const MessageHandlerName = "ipc"

//go:embed scheme_guard.js
var schemeGuardScript string

// bridgeScript captures the native post function before page scripts run and
// exposes it as a frozen window.ipc. The %s placeholder is the expression
// naming the native handler object.
const bridgeScript = `(function() {
  var handler = %s;
  if (!handler || typeof handler.postMessage !== 'function') return;
  var post = handler.postMessage.bind(handler);
  Object.defineProperty(window, 'ipc', {
    value: Object.freeze({ postMessage: function(msg) { post(String(msg)); } }),
    writable: false,
    configurable: false
  });
})();`

// cspScript inserts a Content-Security-Policy meta tag. The %s placeholder is
// a JSON string literal.
const cspScript = `(function() {
  try {
    var meta = document.createElement('meta');
    meta.httpEquiv = 'Content-Security-Policy';
    meta.content = %s;
    var target = document.head || document.documentElement;
    if (target.firstChild) {
      target.insertBefore(meta, target.firstChild);
    } else {
      target.appendChild(meta);
    }
  } catch (e) {}
})();`

// BridgeScript returns the IPC bridge for the native handler named by
// handlerExpr, e.g. "window.webkit.messageHandlers.ipc".
func BridgeScript(handlerExpr string) string {
	return fmt.Sprintf(bridgeScript, handlerExpr)
}

// SchemeGuardScript returns the script that stops page content from reaching
// javascript:, file:, data: and blob: URLs through the DOM.
func SchemeGuardScript() string {
	return schemeGuardScript
}

// CSPScript returns the script injecting csp as a meta tag.
func CSPScript(csp string) string {
	return fmt.Sprintf(cspScript, security.JSONString(csp))
}

// PostMessageScript returns the snippet delivering text to the page's
// window.__native_message__ listener, if the page installed one.
func PostMessageScript(text string) string {
	return "if(window.__native_message__)window.__native_message__(" + security.JSONString(text) + ");"
}

// UserScripts lists the document-start scripts for a window in injection
// order. The CSP script is omitted when csp is empty.
func UserScripts(handlerExpr, csp string) []string {
	scripts := []string{BridgeScript(handlerExpr), SchemeGuardScript()}
	if csp != "" {
		scripts = append(scripts, CSPScript(csp))
	}
	return scripts
}
