package handler

// graphiqlPage は/graphqlに対してクエリを発行する開発用のGraphiQLページ。
var graphiqlPage = []byte(`
<!DOCTYPE html>
<html>
	<head>
		<title>Launchpad GraphQL</title>
		<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphiql@3.0.6/graphiql.min.css" />
	</head>
	<body style="margin: 0;">
		<div id="graphiql" style="height: 100vh;"></div>
		<script src="https://cdn.jsdelivr.net/npm/react@18/umd/react.production.min.js"></script>
		<script src="https://cdn.jsdelivr.net/npm/react-dom@18/umd/react-dom.production.min.js"></script>
		<script src="https://cdn.jsdelivr.net/npm/graphiql@3.0.6/graphiql.min.js"></script>
		<script>
			const fetcher = GraphiQL.createFetcher({url: '/graphql'});
			ReactDOM.createRoot(document.getElementById('graphiql')).render(
				React.createElement(GraphiQL, {fetcher: fetcher})
			);
		</script>
	</body>
</html>
`)
