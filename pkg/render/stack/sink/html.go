package sink

import (
	"html"
	"strings"

	"github.com/matzehuels/memstack/pkg/errors"
	"github.com/matzehuels/memstack/pkg/io"
)

// HTMLOption configures HTML rendering via [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	theme Theme
	title string
}

// WithHTMLTheme selects the color theme.
func WithHTMLTheme(t Theme) HTMLOption { return func(r *htmlRenderer) { r.theme = t } }

// WithHTMLTitle sets the page title. Defaults to the root node's name.
func WithHTMLTitle(s string) HTMLOption { return func(r *htmlRenderer) { r.title = s } }

// RenderHTML produces a self-contained interactive page. The document
// payload is embedded as JSON and the expansion engine runs client-side,
// so the file works offline with no server.
func RenderHTML(doc io.Document, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{theme: Dark(), title: doc.Root.Name}
	for _, opt := range opts {
		opt(&r)
	}

	payload, err := io.MarshalDocument(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal payload")
	}
	// A "</script>" inside node names would terminate the embed block early.
	safe := strings.ReplaceAll(string(payload), "</", "<\\/")

	page := htmlPage
	page = strings.ReplaceAll(page, "__TITLE__", html.EscapeString(r.title))
	page = strings.ReplaceAll(page, "__THEME__", themeCSS(r.theme))
	page = strings.ReplaceAll(page, "__PAYLOAD__", safe)
	return []byte(page), nil
}

func themeCSS(t Theme) string {
	var b strings.Builder
	pairs := []struct{ name, value string }{
		{"--bg", t.Background},
		{"--surface", t.Surface},
		{"--text", t.Text},
		{"--muted", t.Muted},
		{"--marker", t.Marker},
		{"--gap-fill", t.GapFill},
		{"--gap-text", t.GapText},
		{"--border", t.Border},
	}
	for _, p := range pairs {
		b.WriteString(p.name)
		b.WriteString(": ")
		b.WriteString(p.value)
		b.WriteString("; ")
	}
	b.WriteString("--depth: ")
	b.WriteString(strings.Join(t.Depth, ","))
	b.WriteString(";")
	return b.String()
}

// htmlPage is the interactive viewer shell. The embedded script mirrors the
// layout engine: same allocation policies, same settle loop, same marker
// rules, so a page and a server-side snapshot of the same document agree.
const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>__TITLE__</title>
<style>
  :root { __THEME__ }
  body { background: var(--bg); color: var(--text); font-family: ui-monospace, SFMono-Regular, Menlo, monospace; margin: 0; padding: 24px; }
  h1 { font-size: 16px; font-weight: 600; margin: 0 0 16px 140px; }
  #diagram { position: relative; margin-left: 140px; max-width: 720px; }
  .block { position: absolute; left: 0; right: 0; border: 1px solid var(--border); box-sizing: border-box; overflow: hidden; transition: height 0.15s ease, top 0.15s ease; }
  .block.drillable { cursor: pointer; }
  .block.gap { background: var(--gap-fill); color: var(--gap-text); }
  .block .label { padding: 4px 8px; font-size: 12px; white-space: nowrap; pointer-events: none; }
  .block .label .sz { color: var(--muted); margin-left: 8px; }
  .inner { position: absolute; left: 12px; right: 12px; bottom: 0; }
  .marker { position: absolute; right: 100%; margin-right: 14px; transform: translateY(-50%); font-size: 10px; color: var(--muted); white-space: nowrap; }
  .marker::after { content: ""; position: absolute; left: 100%; top: 50%; width: 10px; border-top: 1px solid var(--marker); margin-left: 4px; }
  #controls { margin: 0 0 12px 140px; font-size: 12px; }
  #controls button { background: var(--surface); color: var(--text); border: 1px solid var(--border); padding: 4px 10px; cursor: pointer; font: inherit; }
</style>
</head>
<body>
<h1>__TITLE__</h1>
<div id="controls">
  <button id="expand-all">Expand all</button>
  <button id="collapse-all">Collapse all</button>
</div>
<div id="diagram"></div>
<script id="payload" type="application/json">
__PAYLOAD__
</script>
<script>
(function () {
  "use strict";

  var MIN = 52, MAX = 140, GAP_EXT = 52;
  var INNER_MIN = 44, INNER_GAP = 44;
  var BUDGET = 900, PAD = 20;
  var MAX_PASSES = 60, THRESHOLD = 1;
  var GAP_NAME = "Unmapped / Reserved";

  var doc = JSON.parse(document.getElementById("payload").textContent);
  var byId = {}, byParent = {};
  doc.nodes.forEach(function (n) {
    byId[n.id] = n;
    if (n.parent) {
      (byParent[n.parent] = byParent[n.parent] || []).push(n);
    }
  });

  var depthColors = getComputedStyle(document.documentElement)
    .getPropertyValue("--depth").split(",").map(function (s) { return s.trim(); });

  function fmtAddr(a) {
    var hex = a.toString(16).toUpperCase();
    var width = Math.max(8, Math.ceil(hex.length / 4) * 4);
    while (hex.length < width) hex = "0" + hex;
    var parts = [];
    for (var i = 0; i < hex.length; i += 4) parts.push(hex.slice(i, i + 4));
    return "0x" + parts.join("_");
  }

  function fmtSize(s) {
    var units = ["B", "KB", "MB", "GB", "TB"], i = 0, v = s;
    while (v >= 1024 && i < units.length - 1) { v /= 1024; i++; }
    return (i === 0 ? v : v.toFixed(2)) + " " + units[i];
  }

  function items(node) {
    var kids = byParent[node.id] || [];
    var out = [], cur = node.start;
    kids.forEach(function (k) {
      if (k.start > cur) out.push(gapItem(node, cur, k.start));
      out.push({ id: k.id, name: k.name, start: k.start, end: k.end, size: k.size, depth: k.depth, gap: false });
      cur = k.end;
    });
    if (cur < node.end) out.push(gapItem(node, cur, node.end));
    return out;
  }

  function gapItem(parent, start, end) {
    return { id: parent.id + "/gap@" + start, name: GAP_NAME, start: start, end: end, size: end - start, depth: parent.depth + 1, gap: true };
  }

  function weight(it) { return it.size > 0 ? it.size : 1; }

  function fit(list, min, max, budget, gapExt) {
    var ext = [], total = 0;
    list.forEach(function (it) { if (!it.gap) total += weight(it); });
    var avail = budget - list.filter(function (it) { return it.gap; }).length * gapExt;
    list.forEach(function (it) {
      if (it.gap) { ext.push(gapExt); return; }
      var share = total > 0 ? Math.floor(avail * weight(it) / total) : min;
      ext.push(Math.min(max, Math.max(min, share)));
    });
    for (var guard = 0; guard < 2000; guard++) {
      var sum = 0;
      ext.forEach(function (e) { sum += e; });
      var delta = budget - sum;
      if (delta === 0) break;
      var idxs = [];
      list.forEach(function (it, i) {
        if (it.gap) return;
        if (delta > 0 ? ext[i] < max : ext[i] > min) idxs.push(i);
      });
      if (idxs.length === 0) break;
      var step = Math.max(1, Math.floor(Math.abs(delta) / idxs.length));
      for (var j = 0; j < idxs.length; j++) {
        var i = idxs[j];
        if (delta > 0) {
          var grow = Math.min(step, max - ext[i], delta);
          ext[i] += grow; delta -= grow;
        } else {
          var shrink = Math.min(step, ext[i] - min, -delta);
          ext[i] -= shrink; delta += shrink;
        }
        if (delta === 0) break;
      }
    }
    return ext;
  }

  function compact(list, min, gapExt) {
    return list.map(function (it) { return it.gap ? gapExt : min; });
  }

  // Realized layout tree. base is remembered at first layout; collapse
  // restores it and discards the subtree.
  var base = {}, arena = {};

  function realize(list, extents, level) {
    return list.map(function (it, i) {
      var b = { item: it, level: level, expanded: false, extent: extents[i], children: null };
      if (!(it.id in base)) base[it.id] = extents[i];
      if (!it.gap) arena[it.id] = b;
      return b;
    });
  }

  function discard(blocks) {
    blocks.forEach(function (b) {
      if (b.children) discard(b.children);
      delete base[b.item.id];
      if (!b.item.gap) delete arena[b.item.id];
    });
  }

  function drillable(b) {
    return !b.item.gap && (byParent[b.item.id] || []).length > 0;
  }

  function toggle(b) {
    if (!drillable(b)) return false;
    if (b.expanded) {
      discard(b.children);
      b.children = null;
      b.expanded = false;
      b.extent = base[b.item.id];
    } else {
      var list = items(b.item);
      b.children = realize(list, compact(list, INNER_MIN, INNER_GAP), b.level + 1);
      b.expanded = true;
    }
    return true;
  }

  function eachExpanded(blocks, out) {
    blocks.forEach(function (b) {
      if (b.expanded) out.push(b);
      if (b.children) eachExpanded(b.children, out);
    });
  }

  function settle(top) {
    for (var pass = 0; pass < MAX_PASSES; pass++) {
      var expanded = [];
      eachExpanded(top, expanded);
      expanded.sort(function (a, b) { return b.level - a.level; });
      var changed = false;
      expanded.forEach(function (b) {
        var content = 0;
        b.children.forEach(function (c) { content += c.extent; });
        var need = Math.round(Math.max(base[b.item.id], content + PAD));
        if (Math.abs(Math.round(b.extent) - need) >= THRESHOLD) {
          b.extent = need;
          changed = true;
        }
      });
      if (!changed) return;
    }
  }

  function markers(level) {
    var out = [], y = 0, seen = {};
    function hint(i) {
      if (!level[i].item.gap) return level[i].item.depth;
      for (var j = i + 1; j < level.length; j++) if (!level[j].item.gap) return level[j].item.depth;
      for (var k = i - 1; k >= 0; k--) if (!level[k].item.gap) return level[k].item.depth;
      return -1;
    }
    level.forEach(function (b, i) {
      out.push({ pos: Math.round(y), addr: b.item.start, hint: hint(i) });
      y += b.extent;
    });
    var last = level[level.length - 1];
    out.push({ pos: Math.round(y), addr: last.item.end, hint: hint(level.length - 1) });
    return out.filter(function (m) {
      var key = Math.trunc(m.pos);
      if (seen[key]) return false;
      seen[key] = true;
      return true;
    }).sort(function (a, b) { return a.pos - b.pos; });
  }

  function renderLevel(container, level) {
    var y = 0;
    level.forEach(function (b) {
      var el = document.createElement("div");
      el.className = "block" + (b.item.gap ? " gap" : "") + (drillable(b) ? " drillable" : "");
      el.style.top = y + "px";
      el.style.height = b.extent + "px";
      if (!b.item.gap) el.style.background = depthColors[b.item.depth % depthColors.length];
      var label = document.createElement("div");
      label.className = "label";
      label.textContent = b.item.name;
      var sz = document.createElement("span");
      sz.className = "sz";
      sz.textContent = fmtSize(b.item.size);
      label.appendChild(sz);
      el.appendChild(label);
      if (drillable(b)) {
        el.addEventListener("click", function (ev) {
          ev.stopPropagation();
          if (toggle(b)) { settle(top); render(); }
        });
      }
      if (b.expanded) {
        var inner = document.createElement("div");
        inner.className = "inner";
        var innerH = 0;
        b.children.forEach(function (c) { innerH += c.extent; });
        inner.style.height = innerH + "px";
        renderLevel(inner, b.children);
        el.appendChild(inner);
      }
      container.appendChild(el);
      y += b.extent;
    });
    markers(level).forEach(function (m) {
      var el = document.createElement("div");
      el.className = "marker";
      el.style.top = m.pos + "px";
      el.textContent = fmtAddr(m.addr);
      container.appendChild(el);
    });
  }

  var root = byId[doc.root.id];
  var topItems = items(root);
  var budget = Math.max(BUDGET, topItems.reduce(function (s, it) { return s + (it.gap ? GAP_EXT : MIN); }, 0));
  var top = realize(topItems, fit(topItems, MIN, MAX, budget, GAP_EXT), 0);

  var diagram = document.getElementById("diagram");
  function render() {
    diagram.innerHTML = "";
    var h = 0;
    top.forEach(function (b) { h += b.extent; });
    diagram.style.height = h + "px";
    renderLevel(diagram, top);
  }

  document.getElementById("expand-all").addEventListener("click", function () {
    var changed = true;
    while (changed) {
      changed = false;
      var all = [];
      (function walk(bs) { bs.forEach(function (b) { all.push(b); if (b.children) walk(b.children); }); })(top);
      all.forEach(function (b) {
        if (drillable(b) && !b.expanded) { toggle(b); changed = true; }
      });
    }
    settle(top); render();
  });
  document.getElementById("collapse-all").addEventListener("click", function () {
    top.forEach(function (b) { if (b.expanded) toggle(b); });
    settle(top); render();
  });

  render();
})();
</script>
</body>
</html>
`
