package utils

//run redis
//docker run -p 6379:6379 -d redis

//run minio for document backups
//docker run -p 9000:9000 -p 9001:9001 -d minio/minio server /data --console-address ":9001"

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs
