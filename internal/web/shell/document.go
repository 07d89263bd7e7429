package shell

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const styles = `body{margin:0;font-family:system-ui,sans-serif;color:#1f2933;background:#f7f7f8}
a{color:#0b5cad}
.navbar{display:flex;gap:1rem;align-items:center;padding:.75rem 1.5rem;background:#102a43;color:#fff}
.navbar a{color:#fff;text-decoration:none}
.navbar .brand{font-weight:700;margin-right:auto}
.badge{background:#e12d39;border-radius:999px;padding:0 .5rem;font-size:.8rem}
.container{max-width:1100px;margin:0 auto;padding:1.5rem}
.admin-layout{display:flex;min-height:100vh}
.sidebar{width:220px;background:#102a43;padding:1rem}
.sidebar a{display:block;color:#d9e2ec;padding:.4rem 0;text-decoration:none}
.sidebar a.active{color:#fff;font-weight:700}
.admin-main{flex:1;padding:1.5rem}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(200px,1fr));gap:1rem}
.card{background:#fff;border-radius:6px;padding:1rem;box-shadow:0 1px 3px rgba(0,0,0,.1)}
.card img,.banner img{max-width:100%}
.carousel{display:flex;gap:1rem;overflow-x:auto}
table{width:100%;border-collapse:collapse;background:#fff}
th,td{padding:.5rem;border-bottom:1px solid #e4e7eb;text-align:left}
form.stack{display:flex;flex-direction:column;gap:.75rem;max-width:480px}
.error-boundary{background:#fff3f3;border:1px solid #e12d39;padding:1rem;border-radius:6px}
.button,button{background:#0b5cad;color:#fff;border:0;border-radius:4px;padding:.4rem .8rem;text-decoration:none;cursor:pointer}`

// formScript submits any form carrying data-api to the JSON API with the
// stored bearer token, and handles data-api buttons the same way.
const formScript = `(function(){
function auth(h){var t=localStorage.getItem('token');if(t){h['Authorization']='Bearer '+t}return h}
function report(el,msg){var out=el.querySelector('[data-result]')||document.querySelector('[data-result]');if(out){out.textContent=msg}}
async function call(url,method,headers,body){
  var res=await fetch(url,{method:method,headers:auth(headers),body:body,credentials:'same-origin'});
  var data=await res.json().catch(function(){return {}});
  return {ok:res.ok,data:data};
}
document.addEventListener('submit',async function(e){
  var f=e.target.closest('form[data-api]');if(!f){return}
  e.preventDefault();
  var headers={},body;
  if(f.hasAttribute('data-multipart')){body=new FormData(f)}else{
    var o={};
    Array.prototype.forEach.call(f.elements,function(el){
      if(!el.name||el.value===''){return}
      o[el.name]=(el.type==='number'||el.hasAttribute('data-number'))?Number(el.value):el.value;
    });
    headers['Content-Type']='application/json';body=JSON.stringify(o);
  }
  var r=await call(f.dataset.api,f.dataset.method||'POST',headers,body);
  if(!r.ok){report(f,(r.data.error&&r.data.error.message)||'Request failed');return}
  if(r.data.token){localStorage.setItem('token',r.data.token);localStorage.setItem('role',r.data.role)}
  var next=f.dataset.redirect;
  if(r.data.role==='ADMIN'&&f.dataset.adminRedirect){next=f.dataset.adminRedirect}
  if(next){location.href=next}else{report(f,'Saved')}
});
document.addEventListener('click',async function(e){
  var b=e.target.closest('button[data-api]');if(!b){return}
  if(b.dataset.confirm&&!confirm(b.dataset.confirm)){return}
  var r=await call(b.dataset.api,b.dataset.method||'POST',{},null);
  if(!r.ok){report(document,(r.data.error&&r.data.error.message)||'Request failed');return}
  if(b.dataset.redirect){location.href=b.dataset.redirect}else{location.reload()}
});
})();`

// Document wraps body in the HTML page skeleton.
func Document(site, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + templ.EscapeString(title) + ` | ` + templ.EscapeString(site) + `</title>` +
			`<style>` + styles + `</style></head><body>`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<script>`+formScript+`</script></body></html>`)
		return err
	})
}
