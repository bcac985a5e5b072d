package web

import (
	"fmt"
	"net/http"
)

func DashboardHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprint(w, `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Symtriage Dashboard</title>
  <link href="/assets/css/output.css" rel="stylesheet" />
  <style>
    :root {
      --bg: #f4f6f8;
      --surface: #ffffff;
      --text: #17212b;
      --muted: #5c6b79;
      --line: #d9e0e7;
      --accent: #0b7285;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: ui-sans-serif, system-ui, -apple-system, Segoe UI, Helvetica, Arial, sans-serif;
      background: var(--bg);
      color: var(--text);
    }
    .container { max-width: 1000px; margin: 0 auto; padding: 16px; }
    .header, .panel {
      margin-bottom: 16px;
      padding: 16px;
      background: var(--surface);
      border: 1px solid var(--line);
      border-radius: 12px;
    }
    .header h1 { margin: 0 0 6px 0; font-size: 24px; }
    .header p { margin: 0; color: var(--muted); }
    .stats { display: flex; gap: 24px; flex-wrap: wrap; }
    .stat .value { font-size: 22px; font-weight: 700; color: var(--accent); }
    .stat .label { font-size: 12px; color: var(--muted); }
    table { width: 100%; border-collapse: collapse; font-size: 14px; }
    th, td { text-align: left; padding: 8px; border-bottom: 1px solid var(--line); }
    th { color: var(--muted); font-weight: 600; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Symtriage</h1>
      <p>Recent symptom triage predictions</p>
    </div>
    <div class="panel">
      <div class="stats">
        <div class="stat"><div class="value" id="stat-count">-</div><div class="label">Predictions</div></div>
        <div class="stat"><div class="value" id="stat-confidence">-</div><div class="label">Avg confidence</div></div>
        <div class="stat"><div class="value" id="stat-latency">-</div><div class="label">Avg response (ms)</div></div>
        <div class="stat"><div class="value" id="stat-critical">-</div><div class="label">Critical</div></div>
      </div>
    </div>
    <div class="panel">
      <table>
        <thead>
          <tr><th>When</th><th>Symptoms</th><th>Specialty</th><th>Urgency</th><th>Confidence</th><th>Strategy</th></tr>
        </thead>
        <tbody id="prediction-rows"></tbody>
      </table>
    </div>
  </div>
  <script>
    function urgencyBadge(level) {
      return '<span class="badge badge-' + level + '">' + level + '</span>';
    }

    async function refresh() {
      const [summaryRes, listRes] = await Promise.all([
        fetch('/api/predictions/summary'),
        fetch('/api/predictions'),
      ]);
      const summary = await summaryRes.json();
      const predictions = await listRes.json();

      document.getElementById('stat-count').textContent = summary.count;
      document.getElementById('stat-confidence').textContent =
        summary.count ? (summary.avg_confidence * 100).toFixed(0) + '%' : '-';
      document.getElementById('stat-latency').textContent =
        summary.count ? summary.avg_response_time_ms.toFixed(0) : '-';
      document.getElementById('stat-critical').textContent =
        (summary.by_urgency && summary.by_urgency.critical) || 0;

      const rows = predictions.slice(0, 50).map(function (p) {
        return '<tr>' +
          '<td>' + new Date(p.created_at).toLocaleString() + '</td>' +
          '<td>' + p.symptoms + '</td>' +
          '<td>' + p.recommended_specialty + '</td>' +
          '<td>' + urgencyBadge(p.urgency_level) + '</td>' +
          '<td>' + (p.confidence * 100).toFixed(0) + '%</td>' +
          '<td>' + p.strategy + '</td>' +
          '</tr>';
      });
      document.getElementById('prediction-rows').innerHTML = rows.join('');
    }

    refresh();
    setInterval(refresh, 15000);
  </script>
</body>
</html>`)
}
