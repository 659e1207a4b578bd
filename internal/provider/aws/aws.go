// Package aws backs the normalization layer with EC2 instances, RDS
// databases, S3 buckets and CloudWatch CPU metrics.
package aws

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Hema-02/intent-cloud-project/internal/domain/resource"
	"github.com/Hema-02/intent-cloud-project/internal/provider"
	"github.com/Hema-02/intent-cloud-project/internal/provider/pricing"
	"github.com/Hema-02/intent-cloud-project/internal/provider/static"
	"github.com/Hema-02/intent-cloud-project/pkg/config"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

const providerName = "aws"

// Last-resort AMI when the image lookup itself fails (Amazon Linux 2023,
// us-east-1).
const fallbackImageID = "ami-0c101f26f147fa7fd"

var instanceStatus = map[string]resource.Status{
	"pending":       resource.StatusCreating,
	"running":       resource.StatusRunning,
	"stopping":      resource.StatusStopping,
	"stopped":       resource.StatusStopped,
	"shutting-down": resource.StatusStopping,
	"terminated":    resource.StatusStopped,
}

var databaseStatus = map[string]resource.Status{
	"available":  resource.StatusAvailable,
	"creating":   resource.StatusCreating,
	"deleting":   resource.StatusStopping,
	"failed":     resource.StatusError,
	"modifying":  resource.StatusMaintenance,
	"backing-up": resource.StatusMaintenance,
	"stopped":    resource.StatusStopped,
	"starting":   resource.StatusStarting,
	"stopping":   resource.StatusStopping,
}

type Backend struct {
	region     string
	ec2        *ec2.Client
	rds        *rds.Client
	s3         *s3.Client
	cloudwatch *cloudwatch.Client
	logger     logger.Logger
}

var _ provider.Backend = (*Backend)(nil)

func New(ctx context.Context, cfg config.AWSConfig, log logger.Logger) (*Backend, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Backend{
		region:     cfg.Region,
		ec2:        ec2.NewFromConfig(awsCfg),
		rds:        rds.NewFromConfig(awsCfg),
		s3:         s3.NewFromConfig(awsCfg),
		cloudwatch: cloudwatch.NewFromConfig(awsCfg),
		logger:     log,
	}, nil
}

func (b *Backend) Name() string { return providerName }

func (b *Backend) HealthCheck(ctx context.Context) error {
	_, err := b.ec2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{MaxResults: aws.Int32(5)})
	return err
}

func (b *Backend) ListResources(ctx context.Context, typ resource.Type) ([]resource.Resource, error) {
	switch typ {
	case resource.TypeInstance:
		return b.listInstances(ctx)
	case resource.TypeDatabase:
		return b.listDatabases(ctx)
	case resource.TypeStorage:
		return b.listBuckets(ctx)
	}
	return nil, fmt.Errorf("%w %s: %s", provider.ErrUnsupportedOperation, providerName, typ)
}

func (b *Backend) listInstances(ctx context.Context) ([]resource.Resource, error) {
	var out []resource.Resource

	paginator := ec2.NewDescribeInstancesPaginator(b.ec2, &ec2.DescribeInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, reservation := range page.Reservations {
			for _, inst := range reservation.Instances {
				out = append(out, b.normalizeInstance(inst))
			}
		}
	}
	return out, nil
}

func (b *Backend) normalizeInstance(inst ec2types.Instance) resource.Resource {
	sku := string(inst.InstanceType)
	res := resource.Resource{
		ID:     aws.ToString(inst.InstanceId),
		Name:   nameTag(inst.Tags),
		Type:   resource.TypeInstance,
		SKU:    sku,
		Region: b.region,
		Cost:   pricing.InstanceMonthly(providerName, sku),
	}
	if res.Name == "" {
		res.Name = res.ID
	}
	if inst.State != nil {
		res.Status = resource.NormalizeStatus(instanceStatus, string(inst.State.Name))
	}
	if inst.Placement != nil {
		res.Zone = aws.ToString(inst.Placement.AvailabilityZone)
	}
	if inst.LaunchTime != nil {
		res.CreatedAt = inst.LaunchTime.UTC().Format(time.RFC3339)
	}
	return res
}

func (b *Backend) listDatabases(ctx context.Context) ([]resource.Resource, error) {
	out, err := b.rds.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{})
	if err != nil {
		return nil, err
	}

	resources := make([]resource.Resource, 0, len(out.DBInstances))
	for _, db := range out.DBInstances {
		res := resource.Resource{
			ID:     aws.ToString(db.DBInstanceIdentifier),
			Name:   aws.ToString(db.DBInstanceIdentifier),
			Type:   resource.TypeDatabase,
			SKU:    aws.ToString(db.DBInstanceClass),
			Engine: aws.ToString(db.Engine),
			Status: resource.NormalizeStatus(databaseStatus, aws.ToString(db.DBInstanceStatus)),
			Region: b.region,
			Zone:   aws.ToString(db.AvailabilityZone),
			Cost:   pricing.DatabaseMonthly("standard"),
		}
		if db.InstanceCreateTime != nil {
			res.CreatedAt = db.InstanceCreateTime.UTC().Format(time.RFC3339)
		}
		resources = append(resources, res)
	}
	return resources, nil
}

func (b *Backend) listBuckets(ctx context.Context) ([]resource.Resource, error) {
	out, err := b.s3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, err
	}

	resources := make([]resource.Resource, 0, len(out.Buckets))
	for _, bucket := range out.Buckets {
		res := resource.Resource{
			ID:     aws.ToString(bucket.Name),
			Name:   aws.ToString(bucket.Name),
			Type:   resource.TypeStorage,
			Status: resource.StatusActive,
			Region: b.region,
			Cost:   pricing.StorageMonthly(),
		}
		if bucket.CreationDate != nil {
			res.CreatedAt = bucket.CreationDate.UTC().Format(time.RFC3339)
		}
		resources = append(resources, res)
	}
	return resources, nil
}

func (b *Backend) CreateResource(ctx context.Context, typ resource.Type, spec resource.CreateSpec) (*resource.Resource, error) {
	switch typ {
	case resource.TypeInstance:
		return b.createInstance(ctx, spec)
	case resource.TypeStorage:
		return b.createBucket(ctx, spec)
	}
	return nil, fmt.Errorf("%w %s: create %s", provider.ErrUnsupportedOperation, providerName, typ)
}

func (b *Backend) createInstance(ctx context.Context, spec resource.CreateSpec) (*resource.Resource, error) {
	sku := spec.SKU
	if sku == "" {
		sku = pricing.DefaultSKU(providerName)
	}

	imageID := b.defaultImageID(ctx)

	out, err := b.ec2.RunInstances(ctx, &ec2.RunInstancesInput{
		ImageId:      aws.String(imageID),
		InstanceType: ec2types.InstanceType(sku),
		MinCount:     aws.Int32(1),
		MaxCount:     aws.Int32(1),
		TagSpecifications: []ec2types.TagSpecification{{
			ResourceType: ec2types.ResourceTypeInstance,
			Tags: []ec2types.Tag{{
				Key:   aws.String("Name"),
				Value: aws.String(spec.Name),
			}},
		}},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Instances) == 0 {
		return nil, fmt.Errorf("RunInstances returned no instances")
	}

	res := b.normalizeInstance(out.Instances[0])
	res.Name = spec.Name
	res.Status = resource.StatusCreating
	return &res, nil
}

// defaultImageID resolves the boot image in three tiers: the caller never
// picks one, so try the newest Amazon Linux 2023 AMI, then fall back to a
// hard-coded constant when that query fails too.
func (b *Backend) defaultImageID(ctx context.Context) string {
	out, err := b.ec2.DescribeImages(ctx, &ec2.DescribeImagesInput{
		Owners: []string{"amazon"},
		Filters: []ec2types.Filter{
			{Name: aws.String("name"), Values: []string{"al2023-ami-2023*-x86_64"}},
			{Name: aws.String("state"), Values: []string{"available"}},
		},
	})
	if err != nil || len(out.Images) == 0 {
		b.logger.Warn("AMI lookup failed, using last-resort image", "error", err)
		return fallbackImageID
	}

	images := out.Images
	sort.Slice(images, func(i, j int) bool {
		return aws.ToString(images[i].CreationDate) > aws.ToString(images[j].CreationDate)
	})
	return aws.ToString(images[0].ImageId)
}

func (b *Backend) createBucket(ctx context.Context, spec resource.CreateSpec) (*resource.Resource, error) {
	_, err := b.s3.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(spec.Name),
	})
	if err != nil {
		return nil, err
	}

	return &resource.Resource{
		ID:        spec.Name,
		Name:      spec.Name,
		Type:      resource.TypeStorage,
		Status:    resource.StatusActive,
		Region:    b.region,
		Cost:      pricing.StorageMonthly(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (b *Backend) UpdateResourceState(ctx context.Context, typ resource.Type, id string, desired resource.DesiredState) error {
	if typ != resource.TypeInstance {
		return fmt.Errorf("%w %s: update %s", provider.ErrUnsupportedOperation, providerName, typ)
	}

	var err error
	switch desired {
	case resource.DesiredStart:
		_, err = b.ec2.StartInstances(ctx, &ec2.StartInstancesInput{InstanceIds: []string{id}})
	case resource.DesiredStop:
		_, err = b.ec2.StopInstances(ctx, &ec2.StopInstancesInput{InstanceIds: []string{id}})
	default:
		return fmt.Errorf("%w %s: state %s", provider.ErrUnsupportedOperation, providerName, desired)
	}
	return err
}

func (b *Backend) DeleteResource(ctx context.Context, typ resource.Type, id string) error {
	switch typ {
	case resource.TypeInstance:
		_, err := b.ec2.TerminateInstances(ctx, &ec2.TerminateInstancesInput{InstanceIds: []string{id}})
		return err
	case resource.TypeStorage:
		_, err := b.s3.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(id)})
		return err
	}
	return fmt.Errorf("%w %s: delete %s", provider.ErrUnsupportedOperation, providerName, typ)
}

// GetMetrics reads the instance's average CPU over the last hour from
// CloudWatch. Memory, network and disk have no agentless metric; those
// values are synthesized and the sample tagged accordingly.
func (b *Backend) GetMetrics(ctx context.Context, id string) (*resource.MetricSample, error) {
	end := time.Now()
	start := end.Add(-1 * time.Hour)

	out, err := b.cloudwatch.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String("AWS/EC2"),
		MetricName: aws.String("CPUUtilization"),
		Dimensions: []cwtypes.Dimension{{
			Name:  aws.String("InstanceId"),
			Value: aws.String(id),
		}},
		StartTime:  aws.Time(start),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(300),
		Statistics: []cwtypes.Statistic{cwtypes.StatisticAverage},
	})
	if err != nil {
		return nil, err
	}

	sample := static.SyntheticMetrics()
	if len(out.Datapoints) > 0 {
		latest := out.Datapoints[0]
		for _, dp := range out.Datapoints[1:] {
			if dp.Timestamp != nil && latest.Timestamp != nil && dp.Timestamp.After(*latest.Timestamp) {
				latest = dp
			}
		}
		sample.CPU = aws.ToFloat64(latest.Average)
	}
	return sample, nil
}

func nameTag(tags []ec2types.Tag) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == "Name" {
			return aws.ToString(tag.Value)
		}
	}
	return ""
}
