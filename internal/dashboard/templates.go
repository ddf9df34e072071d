package dashboard

import (
	"net/http"
)

// ServeIndex serves the admin shell page.
func (d *Dashboard) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Admin</title>
</head>
<body>
<form id="login">
  <input name="email" type="email" placeholder="Email" required>
  <input name="password" type="password" placeholder="Password" required>
  <button type="submit">Sign in</button>
</form>
<section id="stats" hidden></section>
<ul id="toasts"></ul>
<script>
const form = document.getElementById('login');
form.addEventListener('submit', async (e) => {
  e.preventDefault();
  const body = Object.fromEntries(new FormData(form));
  const res = await fetch('/api/admin/login', {method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify(body)});
  if (!res.ok) { alert('Login failed'); return; }
  const {token} = await res.json();
  form.hidden = true;
  const stats = await fetch('/api/admin/dashboard/stats', {headers: {Authorization: 'Bearer ' + token}}).then(r => r.json());
  const section = document.getElementById('stats');
  section.hidden = false;
  section.textContent = JSON.stringify(stats.collections, null, 2);
  const proto = location.protocol === 'https:' ? 'wss' : 'ws';
  const ws = new WebSocket(proto + '://' + location.host + '/ws/admin?token=' + encodeURIComponent(token));
  ws.onmessage = (ev) => {
    const msg = JSON.parse(ev.data);
    if (msg.type !== 'lead') return;
    const li = document.createElement('li');
    li.textContent = 'New ' + msg.lead.collection + ': ' + msg.lead.name + ' - ' + msg.lead.summary;
    document.getElementById('toasts').prepend(li);
  };
  setInterval(() => ws.readyState === 1 && ws.send('{"type":"ping"}'), 30000);
});
</script>
</body>
</html>
`
