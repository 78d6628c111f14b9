package editor

import "encoding/base64"

// GainParameter is the single parameter of the demo gain plugin.
func GainParameter() Parameter {
	return Parameter{ID: "gain", Name: "Gain", Min: 0, Max: 1, Default: 0.5}
}

const demoPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>plugview gain</title>
<style>
  body { font-family: sans-serif; background: #1e1e2e; color: #cdd6f4; margin: 24px; }
  input[type=range] { width: 100%; }
  button { margin-right: 8px; }
</style>
</head>
<body>
<h1>Gain</h1>
<input id="gain" type="range" min="0" max="1" step="0.01">
<p>Value: <span id="value">-</span></p>
<p>
  <button id="small">400x300</button>
  <button id="large">800x600</button>
  <button id="close">Close</button>
</p>
<script>
  function send(message, params) {
    juceBridge.postMessage(JSON.stringify({ message: message, params: params || {} }));
  }

  function byId(id) {
    return typeof document.getElementById === 'function' ? document.getElementById(id) : null;
  }

  function render(state) {
    var slider = byId('gain');
    var label = byId('value');
    state.parameters.forEach(function (p) {
      if (p.id !== 'gain') {
        return;
      }
      if (slider) { slider.value = p.value; }
      if (label) { label.textContent = p.value.toFixed(2); }
    });
  }

  function juceBridgeOnMessage(text) {
    var msg = JSON.parse(text);
    if (msg.message === 'state' || msg.message === 'getState') {
      render(msg.result);
    }
  }

  window.addEventListener('load', function () {
    var slider = byId('gain');
    if (slider) {
      slider.addEventListener('input', function () {
        send('setParameter', { id: 'gain', value: parseFloat(slider.value) });
      });
      byId('small').addEventListener('click', function () { juceBridge.resizeTo(400, 300); });
      byId('large').addEventListener('click', function () { juceBridge.resizeTo(800, 600); });
      byId('close').addEventListener('click', function () { send('close'); });
    }
    send('onLoad');
  });
</script>
</body>
</html>
`

// DemoPageURL returns the built-in editor page as a data: URL.
func DemoPageURL() string {
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(demoPage))
}
